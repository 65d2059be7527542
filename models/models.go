package models

import "time"

// ParsedContent is the feature record derived once from a fetched page.
// It is immutable after parsing; every downstream scorer reads from it.
type ParsedContent struct {
	Text        string     `json:"text"`
	Images      []ImageRef `json:"images"`
	Links       int        `json:"links"`
	Hashtags    []string   `json:"hashtags"`
	Likes       *int       `json:"likes"`
	Comments    *int       `json:"comments"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	JSONLDCount int        `json:"json_ld_count"`
	WordCount   int        `json:"word_count"`
}

// ImageRef describes one extracted image candidate. Repeated <img> srcs
// each get their own entry; width/height are nil when the markup carried
// no usable numeric attribute.
type ImageRef struct {
	Src    string `json:"src"`
	Alt    string `json:"alt"`
	Width  *int   `json:"width,omitempty"`
	Height *int   `json:"height,omitempty"`
}

// CategoryScore is one rubric category with its half-step star value.
type CategoryScore struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ScoreSet is an ordered list of category scores. Order matters: the
// strongest/weakest lookups break ties by first-encountered category, and
// the front-ends render rows in this order.
type ScoreSet []CategoryScore

// Get returns the score for a category name, or 0 and false if absent.
func (s ScoreSet) Get(name string) (float64, bool) {
	for _, cs := range s {
		if cs.Name == name {
			return cs.Value, true
		}
	}
	return 0, false
}

// Average returns the unrounded mean of the category values.
func (s ScoreSet) Average() float64 {
	if len(s) == 0 {
		return 0
	}
	sum := 0.0
	for _, cs := range s {
		sum += cs.Value
	}
	return sum / float64(len(s))
}

// Strongest returns the name of the first category with the maximum value.
func (s ScoreSet) Strongest() string {
	best := ""
	bestVal := 0.0
	for _, cs := range s {
		if best == "" || cs.Value > bestVal {
			best = cs.Name
			bestVal = cs.Value
		}
	}
	return best
}

// Weakest returns the name of the first category with the minimum value.
func (s ScoreSet) Weakest() string {
	worst := ""
	worstVal := 0.0
	for _, cs := range s {
		if worst == "" || cs.Value < worstVal {
			worst = cs.Name
			worstVal = cs.Value
		}
	}
	return worst
}

// EvaluationReport is the complete result of one evaluation. It is built
// fresh per request and never persisted.
type EvaluationReport struct {
	ID             string            `json:"id"`
	ContentType    string            `json:"content_type"`
	URL            string            `json:"url"`
	Scores         ScoreSet          `json:"scores"`
	Reviews        map[string]string `json:"reviews"`
	Overview       []string          `json:"overview"`
	Average        float64           `json:"average"`
	Summary        string            `json:"summary"`
	Notes          []string          `json:"notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	ProcessingTime float64           `json:"processing_time_seconds"`
}

// EvaluateRequest is the JSON API request body for an evaluation.
type EvaluateRequest struct {
	ContentType string `json:"content_type"`
	URL         string `json:"url"`
}

// ReviewRequest is the JSON API request body for the AI review endpoint.
type ReviewRequest struct {
	URL         string `json:"url"`
	Instruction string `json:"instruction"`
}

// ReviewResponse relays the opaque AI answer for a reviewed page.
type ReviewResponse struct {
	URL    string   `json:"url"`
	Review string   `json:"review"`
	Notes  []string `json:"notes,omitempty"`
}

// OllamaRequest represents a request to the Ollama generate API.
type OllamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// OllamaResponse represents a response from the Ollama generate API.
type OllamaResponse struct {
	Model     string `json:"model"`
	CreatedAt string `json:"created_at"`
	Response  string `json:"response"`
	Done      bool   `json:"done"`
}
