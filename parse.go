package rater

import (
	"strings"
	"unicode/utf8"

	"github.com/ohdongsik/contents-rate/models"
)

// maxHashtags caps the merged hashtag list.
const maxHashtags = 80

// ParseContent derives the full feature record from raw HTML. It never
// fails: empty or unusable input produces the zero-value record and every
// extractor degrades independently.
func ParseContent(htmlText string, lex Lexicons) models.ParsedContent {
	if htmlText == "" {
		return models.ParsedContent{
			Images:   []models.ImageRef{},
			Hashtags: []string{},
		}
	}

	text := StripTags(htmlText)
	images := parseImages(htmlText)
	links := parseLinkCount(htmlText)
	hashtags := parseHashtags(text)
	likes := extractCount(htmlText, lex.LikeKeys)
	comments := extractCount(htmlText, lex.CommentKeys)
	jsonLD := extractJSONLD(htmlText)

	title := coalesce(extractMeta(htmlText, "og:title"), extractTitleTag(htmlText))
	description := coalesce(
		extractMeta(htmlText, "og:description"),
		extractMeta(htmlText, "description"),
	)

	// Merge JSON-LD textual fields into the text when not already present,
	// and comma-separated keywords into the hashtag pool.
	for _, obj := range jsonLD {
		for _, field := range []string{"articleBody", "caption", "description"} {
			candidate, ok := obj[field].(string)
			if !ok {
				continue
			}
			trimmed := strings.TrimSpace(candidate)
			if trimmed != "" && !strings.Contains(text, candidate) {
				text = strings.TrimSpace(text + " " + trimmed)
			}
		}
		if keywords, ok := obj["keywords"].(string); ok {
			for _, word := range strings.Split(keywords, ",") {
				word = strings.TrimSpace(word)
				if word == "" {
					continue
				}
				hashtags = append(hashtags, strings.TrimLeft(word, "#"))
			}
		}
	}

	hashtags = dedupeHashtags(hashtags)

	// Platform-internal synonyms only when the primary lists found nothing.
	if likes == nil {
		likes = extractCount(htmlText, lex.LikeFallbackKeys)
	}
	if comments == nil {
		comments = extractCount(htmlText, lex.CommentFallbackKeys)
	}

	return models.ParsedContent{
		Text:        text,
		Images:      images,
		Links:       links,
		Hashtags:    hashtags,
		Likes:       likes,
		Comments:    comments,
		Title:       title,
		Description: description,
		JSONLDCount: len(jsonLD),
		WordCount:   len(strings.Fields(text)),
	}
}

// dedupeHashtags drops tags shorter than two runes, keeps the first
// occurrence of each tag, and caps the result at maxHashtags.
func dedupeHashtags(tags []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, tag := range tags {
		if utf8.RuneCountInString(tag) < 2 || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if len(out) == maxHashtags {
			break
		}
	}
	return out
}
