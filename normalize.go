package rater

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

var (
	scriptBlockRe = regexp.MustCompile(`(?i)<script[\s\S]*?</script>`)
	styleBlockRe  = regexp.MustCompile(`(?i)<style[\s\S]*?</style>`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// StripTags converts raw markup to plain text: script and style blocks go
// first so their bodies never leak into the text, then the remaining tags,
// then entity decoding and whitespace collapsing. Total over arbitrary
// input; empty in, empty out.
//
// The decoded text is NFC-normalized because entity decoding can yield
// decomposed Hangul, which the lexicon matching would not recognize.
func StripTags(raw string) string {
	if raw == "" {
		return ""
	}
	text := scriptBlockRe.ReplaceAllString(raw, " ")
	text = styleBlockRe.ReplaceAllString(text, " ")
	text = tagRe.ReplaceAllString(text, " ")
	text = html.UnescapeString(text)
	text = norm.NFC.String(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
