package rater

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/ohdongsik/contents-rate/models"
)

// Extraction is regex-based on purpose: third-party HTML cannot be trusted
// to be well-formed, so every extractor here is total over arbitrary input
// and degrades to missing/defaulted values instead of failing.

var (
	imgTagRe     = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	ogImageRe    = regexp.MustCompile(`(?i)<meta[^>]+property=["']og:image["'][^>]+content=["']([^"']+)["']`)
	anchorHrefRe = regexp.MustCompile(`(?i)<a\b[^>]*href=`)
	hashtagRe    = regexp.MustCompile(`#([A-Za-z0-9_가-힣]{2,30})`)
	titleTagRe   = regexp.MustCompile(`(?i)<title>([\s\S]*?)</title>`)
	jsonLDRe     = regexp.MustCompile(`(?i)<script[^>]+type=["']application/ld\+json["'][^>]*>([\s\S]*?)</script>`)

	imgAttrRes = map[string]*regexp.Regexp{
		"src":    attrRe("src"),
		"alt":    attrRe("alt"),
		"width":  attrRe("width"),
		"height": attrRe("height"),
		"srcset": attrRe("srcset"),
	}
)

// maxOGImageFallbacks caps how many og:image meta entries are appended
// after the <img> scan.
const maxOGImageFallbacks = 20

func attrRe(attr string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + attr + `\s*=\s*["']([^"']+)["']`)
}

// extractAttr returns the quoted attribute value from a single tag, or ""
// when the attribute is absent.
func extractAttr(tag, attr string) string {
	re, ok := imgAttrRes[attr]
	if !ok {
		re = attrRe(attr)
	}
	if m := re.FindStringSubmatch(tag); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// safeInt parses a numeric attribute leniently: thousands separators are
// stripped, anything else non-numeric yields nil.
func safeInt(value string) *int {
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return nil
	}
	return &n
}

// parseImages scans every <img> tag for src/alt/width/height, appends one
// entry per srcset candidate whose URL is not already present, then up to
// maxOGImageFallbacks og:image meta entries not already present.
func parseImages(htmlText string) []models.ImageRef {
	images := []models.ImageRef{}
	seen := map[string]bool{}

	for _, tag := range imgTagRe.FindAllString(htmlText, -1) {
		src := extractAttr(tag, "src")
		if src == "" {
			continue
		}
		alt := extractAttr(tag, "alt")
		images = append(images, models.ImageRef{
			Src:    src,
			Alt:    alt,
			Width:  safeInt(extractAttr(tag, "width")),
			Height: safeInt(extractAttr(tag, "height")),
		})
		seen[src] = true

		// srcset candidates: URL token before any width/density descriptor.
		if srcset := extractAttr(tag, "srcset"); srcset != "" {
			for _, chunk := range strings.Split(srcset, ",") {
				part := strings.TrimSpace(chunk)
				if idx := strings.IndexByte(part, ' '); idx >= 0 {
					part = part[:idx]
				}
				part = strings.TrimSpace(part)
				if part != "" && !seen[part] {
					images = append(images, models.ImageRef{Src: part, Alt: alt})
					seen[part] = true
				}
			}
		}
	}

	matches := ogImageRe.FindAllStringSubmatch(htmlText, -1)
	if len(matches) > maxOGImageFallbacks {
		matches = matches[:maxOGImageFallbacks]
	}
	for _, m := range matches {
		if src := m[1]; !seen[src] {
			images = append(images, models.ImageRef{Src: src})
			seen[src] = true
		}
	}
	return images
}

// parseLinkCount counts anchor tags carrying an href attribute.
func parseLinkCount(htmlText string) int {
	return len(anchorHrefRe.FindAllString(htmlText, -1))
}

// parseHashtags returns every #token match from normalized text, in
// document order, duplicates included (the aggregator dedupes later).
func parseHashtags(text string) []string {
	var tags []string
	for _, m := range hashtagRe.FindAllStringSubmatch(text, -1) {
		tags = append(tags, m[1])
	}
	return tags
}

// extractCount searches raw HTML for each key in order, looking for a run
// of up to nine digits within 15 characters after the key. First match
// wins; no match at all yields nil.
func extractCount(htmlText string, keys []string) *int {
	for _, key := range keys {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(key) + `[^0-9]{0,15}([0-9]{1,9})`)
		if m := re.FindStringSubmatch(htmlText); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return &n
			}
		}
	}
	return nil
}

// extractMeta resolves a meta value by trying the property attribute first
// and the name attribute second. The winner is entity-decoded and trimmed.
func extractMeta(htmlText, key string) string {
	quoted := regexp.QuoteMeta(key)
	patterns := []string{
		`(?i)<meta[^>]+property=["']` + quoted + `["'][^>]+content=["']([^"']+)["']`,
		`(?i)<meta[^>]+name=["']` + quoted + `["'][^>]+content=["']([^"']+)["']`,
	}
	for _, pattern := range patterns {
		if m := regexp.MustCompile(pattern).FindStringSubmatch(htmlText); m != nil {
			return strings.TrimSpace(html.UnescapeString(m[1]))
		}
	}
	return ""
}

// extractTitleTag returns the decoded <title> element body, or "".
func extractTitleTag(htmlText string) string {
	if m := titleTagRe.FindStringSubmatch(htmlText); m != nil {
		return strings.TrimSpace(html.UnescapeString(m[1]))
	}
	return ""
}

// extractJSONLD parses every ld+json script block. Single objects and
// arrays of objects are accepted; non-object array members and blocks that
// fail to parse are skipped without aborting the scan.
func extractJSONLD(htmlText string) []map[string]any {
	var parsed []map[string]any
	for _, m := range jsonLDRe.FindAllStringSubmatch(htmlText, -1) {
		chunk := strings.TrimSpace(m[1])
		if chunk == "" {
			continue
		}
		var value any
		if err := json.Unmarshal([]byte(chunk), &value); err != nil {
			continue
		}
		switch v := value.(type) {
		case map[string]any:
			parsed = append(parsed, v)
		case []any:
			for _, item := range v {
				if obj, ok := item.(map[string]any); ok {
					parsed = append(parsed, obj)
				}
			}
		}
	}
	return parsed
}

// coalesce returns the first value with non-whitespace content, trimmed.
func coalesce(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
