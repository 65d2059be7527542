package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	rater "github.com/ohdongsik/contents-rate"
	"github.com/ohdongsik/contents-rate/models"
	"github.com/ohdongsik/contents-rate/ollama"
)

// Server represents the evaluation API server
type Server struct {
	evaluator   *rater.Evaluator
	ollama      *ollama.Client
	addr        string
	server      *http.Server
	mux         *http.ServeMux
	corsEnabled bool
}

// Config contains server configuration
type Config struct {
	Addr          string
	RaterConfig   rater.Config
	OllamaBaseURL string
	OllamaModel   string
	CORSEnabled   bool
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		RaterConfig:   rater.DefaultConfig(),
		OllamaBaseURL: ollama.DefaultBaseURL,
		OllamaModel:   ollama.DefaultModel,
		CORSEnabled:   true,
	}
}

// NewServer creates a new API server
func NewServer(config Config) *Server {
	s := &Server{
		evaluator:   rater.New(config.RaterConfig),
		ollama:      ollama.NewClient(config.OllamaBaseURL, config.OllamaModel),
		addr:        config.Addr,
		mux:         http.NewServeMux(),
		corsEnabled: config.CORSEnabled,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         config.Addr,
		Handler:      s.middleware(s.mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // Allow time for slow page fetches and AI reviews
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// registerRoutes sets up all routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())
	s.mux.HandleFunc("/api/evaluate", s.handleEvaluate)
	s.mux.HandleFunc("/api/review", s.handleReview)
}

// Start starts the API server
func (s *Server) Start() error {
	log.Printf("Starting evaluation server on %s", s.addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down evaluation server...")
	return s.server.Shutdown(ctx)
}

// middleware applies common middleware to all routes
func (s *Server) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CORS headers
		if s.corsEnabled {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
		}

		// Logging (skip health checks and metrics scrapes to reduce noise)
		start := time.Now()
		quiet := r.URL.Path == "/health" || r.URL.Path == "/metrics"
		if !quiet {
			log.Printf("%s %s", r.Method, r.URL.Path)
		}

		next.ServeHTTP(w, r)

		if !quiet {
			log.Printf("%s %s - completed in %v", r.Method, r.URL.Path, time.Since(start))
		}
	})
}

// validateURL checks the URL before the pipeline runs. Returns a Korean
// message suitable for direct display, or "" when the URL is acceptable.
func validateURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return "URL을 입력해 주세요."
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "http:// 또는 https:// URL만 지원합니다."
	}
	return ""
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// handleEvaluate handles JSON evaluation requests
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateURL(req.URL); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.ContentType == "" {
		req.ContentType = rater.ContentTypeBlog
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	report := s.evaluator.Evaluate(ctx, req.ContentType, req.URL)
	recordEvaluation(req.ContentType, report)

	respondJSON(w, http.StatusOK, report)
}

// handleReview handles free-form AI review requests
func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if msg := validateURL(req.URL); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	text, notes := s.evaluator.FetchPlainText(ctx, req.URL)
	if text == "" {
		respondError(w, http.StatusBadGateway, "본문을 수집하지 못해 AI 리뷰를 생성할 수 없습니다.")
		return
	}

	review, err := s.ollama.ReviewContent(ctx, text, req.Instruction)
	if err != nil {
		log.Printf("AI review failed for %s: %v", req.URL, err)
		respondError(w, http.StatusBadGateway, "AI 리뷰 생성에 실패했습니다.")
		return
	}

	respondJSON(w, http.StatusOK, models.ReviewResponse{
		URL:    req.URL,
		Review: review,
		Notes:  notes,
	})
}

// handleIndex serves the HTML form and renders form submissions
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		renderPage(w, pageData{})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			renderPage(w, pageData{Error: "요청을 해석하지 못했습니다."})
			return
		}
		url := strings.TrimSpace(r.FormValue("url"))
		contentType := r.FormValue("content_type")
		if contentType == "" {
			contentType = rater.ContentTypeBlog
		}
		if msg := validateURL(url); msg != "" {
			renderPage(w, pageData{Error: msg, URL: url, ContentType: contentType})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
		defer cancel()

		report := s.evaluator.Evaluate(ctx, contentType, url)
		recordEvaluation(contentType, report)

		renderPage(w, pageData{
			URL:         url,
			ContentType: contentType,
			Report:      report,
		})
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
