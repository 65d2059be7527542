package rater

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// FetchConfig controls the page download behavior.
type FetchConfig struct {
	// UserAgent is sent on every attempt.
	UserAgent string
	// AcceptLanguages is tried in order, one attempt per entry.
	AcceptLanguages []string
	// Timeout bounds each individual request.
	Timeout time.Duration
	// AttemptDelay is the pause between failed attempts.
	AttemptDelay time.Duration
	// MaxBodyBytes caps how much of the response body is read.
	MaxBodyBytes int64
}

// DefaultFetchConfig returns the settings used by the evaluation server.
func DefaultFetchConfig() FetchConfig {
	return FetchConfig{
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
		AcceptLanguages: []string{
			"ko-KR,ko;q=0.9,en-US;q=0.8",
			"en-US,en;q=0.9",
		},
		Timeout:      12 * time.Second,
		AttemptDelay: 300 * time.Millisecond,
		MaxBodyBytes: 10 << 20,
	}
}

// FetchFailedNote is the terminal note appended when every fetch attempt
// failed and the evaluation proceeds over empty content.
const FetchFailedNote = "URL 수집 실패로 제한된 평가를 수행했습니다."

// Fetcher downloads pages with per-language retry. It is safe for
// concurrent use.
type Fetcher struct {
	config FetchConfig
	client *http.Client
}

// NewFetcher builds a fetcher whose transport propagates trace context on
// outgoing requests.
func NewFetcher(config FetchConfig) *Fetcher {
	return &Fetcher{
		config: config,
		client: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Fetch downloads the page, trying each configured Accept-Language in
// order. It never returns an error: the HTML may be empty, and the notes
// describe every failed attempt so the caller can surface a degraded-mode
// evaluation instead of refusing to answer.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, []string) {
	notes := []string{}

	for i, lang := range f.config.AcceptLanguages {
		body, failure := f.attempt(ctx, url, lang)
		if failure == "" {
			return body, notes
		}
		notes = append(notes, fmt.Sprintf("수집 시도 %d 실패%s", i+1, failure))
		if f.config.AttemptDelay > 0 && i < len(f.config.AcceptLanguages)-1 {
			select {
			case <-time.After(f.config.AttemptDelay):
			case <-ctx.Done():
				notes = append(notes, FetchFailedNote)
				return "", notes
			}
		}
	}

	notes = append(notes, FetchFailedNote)
	return "", notes
}

// attempt runs one request and returns the body, or a failure suffix for
// the attempt note when the response is unusable.
func (f *Fetcher) attempt(ctx context.Context, url, acceptLanguage string) (string, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Sprintf(": %v", err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Sprintf(": %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBodyBytes))
	if err != nil {
		return "", fmt.Sprintf(": %v", err)
	}
	if resp.StatusCode >= 400 || len(data) == 0 {
		return "", fmt.Sprintf("(HTTP %d)", resp.StatusCode)
	}
	return string(data), ""
}
