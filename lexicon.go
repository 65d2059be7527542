package rater

import (
	"regexp"
	"strings"
)

// Lexicons holds every word list the scorers and the narrative composer
// match against. The defaults target Korean blog and feed content; callers
// evaluating another locale can swap the lists without touching the
// scoring formulas.
type Lexicons struct {
	// Objectivity marks balanced-review vocabulary for the sincerity score.
	Objectivity []string
	// FirstPerson lists first-person pronouns for the density check.
	FirstPerson []string
	// Structure lists structural connectives for the narrative score.
	Structure []string
	// Source lists sourcing/citation markers for the factuality score.
	Source []string
	// Portrait lists portrait/selfie clues (matched case-insensitively).
	Portrait []string
	// Place and Product back the overview inference bullets.
	Place   []string
	Product []string
	// ProductTags are substrings that flag a hashtag as product-related.
	ProductTags []string

	// Engagement count key synonyms, primary list first, then the
	// platform-internal fallbacks tried only when the primary yields nothing.
	LikeKeys            []string
	LikeFallbackKeys    []string
	CommentKeys         []string
	CommentFallbackKeys []string
}

// DefaultLexicons returns the Korean-locale word lists.
func DefaultLexicons() Lexicons {
	return Lexicons{
		Objectivity: []string{"장점", "단점", "비교", "근거", "수치", "후기", "개인적", "주관", "객관"},
		FirstPerson: []string{"저", "제가", "나는", "내가"},
		Structure:   []string{"처음", "먼저", "다음", "그리고", "결론", "정리", "마지막"},
		Source:      []string{"출처", "통계", "공식", "자료", "리포트", "논문"},
		Portrait:    []string{"portrait", "face", "selfie", "인물", "셀카"},
		Place: []string{
			"카페", "레스토랑", "해변", "공원", "스튜디오", "호텔", "거리", "매장", "오피스", "집",
			"seoul", "busan", "tokyo", "paris", "new york", "beach", "cafe", "restaurant", "studio",
		},
		Product:     []string{"제품", "브랜드", "신상", "리뷰", "광고", "협찬", "출시", "model", "review", "brand"},
		ProductTags: []string{"ad", "review", "brand", "item", "제품", "리뷰"},

		LikeKeys:            []string{"like_count", "likes", "좋아요"},
		LikeFallbackKeys:    []string{"edge_media_preview_like", "likeCount", "reaction_count"},
		CommentKeys:         []string{"comment_count", "comments", "댓글"},
		CommentFallbackKeys: []string{"edge_media_to_comment", "commentCount"},
	}
}

// containsCount returns how many of the words appear in the text at least
// once. Each word counts at most once.
func containsCount(text string, words []string) int {
	hits := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			hits++
		}
	}
	return hits
}

// matchCount counts non-overlapping occurrences of any of the words.
func matchCount(text string, words []string, foldCase bool) int {
	if len(words) == 0 || text == "" {
		return 0
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	pattern := "(?:" + strings.Join(quoted, "|") + ")"
	if foldCase {
		pattern = "(?i)" + pattern
	}
	return len(regexp.MustCompile(pattern).FindAllString(text, -1))
}
