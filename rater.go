// Package rater scores web content against a star rubric. It fetches a
// page, extracts text/image/engagement signals with forgiving regex
// extractors, and renders per-category scores with Korean narrative
// reviews. Every stage degrades instead of failing, so an evaluation
// always produces a report.
package rater

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ohdongsik/contents-rate/models"
)

// Supported content types. Unknown types fall back to the blog rubric.
const (
	ContentTypeBlog = "blog"
	ContentTypeFeed = "instagram"
)

var contentTypeLabels = map[string]string{
	ContentTypeBlog: "네이버 블로그 포스팅",
	ContentTypeFeed: "인스타그램 피드",
}

// Config carries everything an Evaluator needs.
type Config struct {
	Fetch    FetchConfig
	Lexicons Lexicons
}

// DefaultConfig returns the standard Korean-locale setup.
func DefaultConfig() Config {
	return Config{
		Fetch:    DefaultFetchConfig(),
		Lexicons: DefaultLexicons(),
	}
}

// Evaluator runs the full scoring pipeline. Safe for concurrent use.
type Evaluator struct {
	config  Config
	fetcher *Fetcher
}

// New builds an Evaluator from the config.
func New(config Config) *Evaluator {
	return &Evaluator{
		config:  config,
		fetcher: NewFetcher(config.Fetch),
	}
}

// Evaluate fetches the URL and produces a complete report. It never
// returns an error: fetch failures show up as notes plus fallback scores.
// The report's content type is always one of the two fixed labels,
// regardless of the tag the caller passed in.
func (e *Evaluator) Evaluate(ctx context.Context, contentType, url string) *models.EvaluationReport {
	start := time.Now()

	htmlText, notes := e.fetcher.Fetch(ctx, url)
	parsed := ParseContent(htmlText, e.config.Lexicons)

	var (
		scores   models.ScoreSet
		reviews  map[string]string
		overview []string
	)
	if contentType == ContentTypeFeed {
		scores = FeedScores(parsed, e.config.Lexicons)
		reviews = buildFeedReviews(parsed, scores)
		overview = buildFeedOverview(parsed, e.config.Lexicons)
	} else {
		scores = BlogScores(parsed, e.config.Lexicons)
		reviews = buildBlogReviews(parsed, scores)
		overview = buildBlogOverview(parsed)
	}

	label, ok := contentTypeLabels[contentType]
	if !ok {
		label = contentTypeLabels[ContentTypeBlog]
	}
	average := roundHalf(scores.Average())

	return &models.EvaluationReport{
		ID:             uuid.New().String(),
		ContentType:    label,
		URL:            url,
		Scores:         scores,
		Reviews:        reviews,
		Overview:       overview,
		Average:        average,
		Summary:        buildSummary(label, average, scores),
		Notes:          notes,
		CreatedAt:      time.Now().UTC(),
		ProcessingTime: time.Since(start).Seconds(),
	}
}

// FetchPlainText downloads the URL and returns its tag-stripped text along
// with any fetch notes. Used by the free-form AI review endpoint.
func (e *Evaluator) FetchPlainText(ctx context.Context, url string) (string, []string) {
	htmlText, notes := e.fetcher.Fetch(ctx, url)
	return StripTags(htmlText), notes
}
