// Package ollama is a minimal client for a local Ollama server, used for
// free-form AI review of fetched content.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ohdongsik/contents-rate/models"
)

const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "gpt-oss:20b"

	// maxPromptRunes caps how much page text goes into a single prompt.
	maxPromptRunes = 4000
)

const defaultInstruction = "다음 본문을 읽고 콘텐츠 품질을 한국어로 간결하게 평가해 주세요. " +
	"강점, 약점, 개선 제안을 각각 한두 문장으로 정리해 주세요."

// Client talks to one Ollama server with one fixed model.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient builds a client. Empty arguments fall back to the defaults.
func NewClient(baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Generate sends a single non-streaming completion request.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(models.OllamaRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama returned HTTP %d", resp.StatusCode)
	}

	var result models.OllamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return result.Response, nil
}

// ReviewContent asks the model to review the page text. A blank
// instruction uses the default Korean review prompt; overlong text is
// truncated to keep the prompt within a sane budget.
func (c *Client) ReviewContent(ctx context.Context, text, instruction string) (string, error) {
	if instruction == "" {
		instruction = defaultInstruction
	}
	runes := []rune(text)
	if len(runes) > maxPromptRunes {
		text = string(runes[:maxPromptRunes])
	}
	return c.Generate(ctx, instruction+"\n\n본문:\n"+text)
}
