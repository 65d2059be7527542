package rater

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ohdongsik/contents-rate/models"
)

// scoreLabel maps a score to its qualitative band.
func scoreLabel(score float64) string {
	switch {
	case score >= 4.5:
		return "매우 우수"
	case score >= 3.5:
		return "양호"
	case score >= 2.5:
		return "보통"
	default:
		return "개선 필요"
	}
}

var labelDiagnoses = map[string]string{
	"매우 우수": "핵심 지표에서 높은 신뢰도를 보였습니다",
	"양호":    "기본 완성도는 충분하지만 더 정교한 보강 여지가 있습니다",
	"보통":    "품질이 균일하지 않아 강점과 약점이 함께 관찰됩니다",
	"개선 필요": "현재 데이터 기준으로 보완 우선순위가 높은 상태입니다",
}

// snippet collapses whitespace and truncates to limit runes, appending an
// ellipsis when trimmed. Empty text yields a fixed fallback sentence.
func snippet(text string, limit int) string {
	clean := strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if clean == "" {
		return "본문 텍스트를 충분히 추출하지 못했습니다."
	}
	if utf8.RuneCountInString(clean) <= limit {
		return clean
	}
	runes := []rune(clean)
	return strings.TrimRight(string(runes[:limit]), " ") + "..."
}

// buildItemReview renders one category's two-sentence verdict plus the
// evidence basis supplied by the caller.
func buildItemReview(score float64, basis string) string {
	label := scoreLabel(score)
	return fmt.Sprintf("%s (%.1f/5). %s. %s", label, score, labelDiagnoses[label], basis)
}

// detectPlaceClues reports up to four place words found in the text, sorted
// for stable output.
func detectPlaceClues(text string, lex Lexicons) string {
	lower := strings.ToLower(text)
	seen := map[string]bool{}
	var hits []string
	for _, w := range lex.Place {
		lw := strings.ToLower(w)
		if strings.Contains(lower, lw) && !seen[lw] {
			seen[lw] = true
			hits = append(hits, w)
		}
	}
	if len(hits) == 0 {
		return "장소 단서를 명확히 확인하지 못했습니다."
	}
	sort.Strings(hits)
	if len(hits) > 4 {
		hits = hits[:4]
	}
	return fmt.Sprintf("배경 장소 단서: %s", strings.Join(hits, ", "))
}

// detectProductFocus checks product vocabulary in the text and product
// substrings among the hashtags.
func detectProductFocus(text string, hashtags []string, lex Lexicons) string {
	lower := strings.ToLower(text)
	found := false
	for _, w := range lex.Product {
		if strings.Contains(lower, strings.ToLower(w)) {
			found = true
			break
		}
	}
	var productTags []string
	for _, tag := range hashtags {
		lowTag := strings.ToLower(tag)
		for _, sub := range lex.ProductTags {
			if strings.Contains(lowTag, strings.ToLower(sub)) {
				productTags = append(productTags, tag)
				break
			}
		}
	}
	if !found && len(productTags) == 0 {
		return "제품 중심 메시지는 상대적으로 약하거나 확인되지 않았습니다."
	}
	detail := "관련 키워드 기반"
	if len(productTags) > 0 {
		if len(productTags) > 3 {
			productTags = productTags[:3]
		}
		detail = strings.Join(productTags, ", ")
	}
	return fmt.Sprintf("제품 주목성은 감지됨 (%s).", detail)
}

// buildBlogOverview composes the three blog overview bullets: page
// identity, body summary, and attachment makeup.
func buildBlogOverview(p models.ParsedContent) []string {
	hiRes := 0
	for _, img := range p.Images {
		if img.Width != nil && img.Height != nil && *img.Width >= 500 && *img.Height >= 500 {
			hiRes++
		}
	}
	imageTypes := "일반 이미지"
	if len(p.Images) > 0 {
		imageTypes = fmt.Sprintf("고해상도 추정 %d장 / 전체 %d장", hiRes, len(p.Images))
	}
	withAlt := 0
	for _, img := range p.Images {
		if strings.TrimSpace(img.Alt) != "" {
			withAlt++
		}
	}
	return []string{
		"페이지 제목/설명: " + snippet(coalesce(p.Title, p.Description), 120),
		"포스팅 내용 요약: " + snippet(p.Text, 200),
		fmt.Sprintf("첨부 이미지 요약: %s, 대체텍스트(alt) 포함 %d장, 구조화데이터(JSON-LD) %d개",
			imageTypes, withAlt, p.JSONLDCount),
	}
}

// buildFeedOverview composes the four feed overview bullets: key phrase,
// place inference, portrait assessment, and product focus.
func buildFeedOverview(p models.ParsedContent, lex Lexicons) []string {
	portraitClues := matchCount(p.Text, lex.Portrait, true)
	return []string{
		"포스트 핵심 문구: " + snippet(coalesce(p.Description, p.Title, p.Text), 120),
		"이미지 배경 장소: " + detectPlaceClues(p.Text, lex),
		fmt.Sprintf("인물 전반 평가: 인물/셀카 단서 %d건, 이미지 수 %d장 기반으로 시각 연출 품질을 판정했습니다.",
			portraitClues, len(p.Images)),
		"제품 주목성: " + detectProductFocus(p.Text, p.Hashtags, lex),
	}
}

// buildBlogReviews renders the per-category narrative for the blog rubric.
// The basis sentence cites the concrete evidence each score was computed
// from.
func buildBlogReviews(p models.ParsedContent, scores models.ScoreSet) map[string]string {
	withAlt := 0
	for _, img := range p.Images {
		if img.Alt != "" {
			withAlt++
		}
	}
	bases := map[string]string{
		CategoryImageQuality: fmt.Sprintf(
			"이미지 %d장을 확인했고 alt 텍스트 %d장, srcset/og:image 후보까지 포함해 시각 자료 밀도와 설명력을 평가했습니다.",
			len(p.Images), withAlt),
		CategorySincerity: fmt.Sprintf(
			"본문 약 %d단어, 참고 링크 %d개, 주관/객관 단어 균형을 근거로 개인 경험과 정보 전달의 균형도를 판정했습니다.",
			p.WordCount, p.Links),
		CategoryNarrative: "문장 길이 분포, 전개 접속어(처음/다음/결론) 존재, 도입-전개-정리 흐름의 일관성을 종합했습니다.",
		CategorySpelling:  "반복 문장부호, 비정상 공백, 자모 반복 패턴과 문장 가독성을 함께 반영해 표기 안정성을 계산했습니다.",
		CategoryFactuality: fmt.Sprintf(
			"숫자/날짜/출처 단서, 링크 %d개, JSON-LD %d개를 근거로 검증 가능한 정보의 비율을 평가했습니다.",
			p.Links, p.JSONLDCount),
	}
	reviews := make(map[string]string, len(scores))
	for _, cs := range scores {
		reviews[cs.Name] = buildItemReview(cs.Value, bases[cs.Name])
	}
	return reviews
}

// buildFeedReviews renders the per-category narrative for the feed rubric.
func buildFeedReviews(p models.ParsedContent, scores models.ScoreSet) map[string]string {
	likeText := "미확인"
	if p.Likes != nil {
		likeText = fmt.Sprintf("%d", *p.Likes)
	}
	commentText := "미확인"
	if p.Comments != nil {
		commentText = fmt.Sprintf("%d", *p.Comments)
	}
	bases := map[string]string{
		CategorySubjectQuality: fmt.Sprintf(
			"이미지 %d장의 수량, 해상도 단서, 대체텍스트 구성도를 종합해 프레이밍/피사체 선명도를 간접 추정했습니다.",
			len(p.Images)),
		CategoryPortrayal: "인물/셀카 키워드, 포스트 설명문, 이미지 설명을 결합해 인물 중심 연출의 일관성과 전달력을 판단했습니다.",
		CategoryHashtagRarity: fmt.Sprintf(
			"해시태그 %d개의 고유 비율과 길이, 범용 태그 편중도를 바탕으로 검색 경쟁 회피 가능성을 평가했습니다.",
			len(p.Hashtags)),
		CategoryEngagement: fmt.Sprintf(
			"좋아요 %s, 댓글 %s를 반영했고, 설명문 단서('%s')와의 적합도도 참고했습니다.",
			likeText, commentText, snippet(coalesce(p.Description, p.Title), 40)),
	}
	reviews := make(map[string]string, len(scores))
	for _, cs := range scores {
		reviews[cs.Name] = buildItemReview(cs.Value, bases[cs.Name])
	}
	return reviews
}

// buildSummary renders the one-line verdict: overall tone, strongest and
// weakest categories, and the content-type label.
func buildSummary(typeLabel string, average float64, scores models.ScoreSet) string {
	var tone string
	switch {
	case average >= 4.3:
		tone = "완성도가 높고 신뢰 가능한 콘텐츠입니다."
	case average >= 3.4:
		tone = "전반적으로 안정적이지만 일부 개선 여지가 있습니다."
	default:
		tone = "핵심 품질 지표에서 보완이 필요합니다."
	}
	return fmt.Sprintf("Sally 평가 결과, %s 강점은 '%s' 항목이고 개선 우선순위는 '%s' 항목입니다. 유형: %s",
		tone, scores.Strongest(), scores.Weakest(), typeLabel)
}
