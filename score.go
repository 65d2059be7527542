package rater

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ohdongsik/contents-rate/models"
)

// Rubric category names. The blog and feed variants are fixed sets; every
// report carries each of its variant's categories exactly once.
const (
	CategoryImageQuality = "이미지 퀄리티"
	CategorySincerity    = "진정성/객관성"
	CategoryNarrative    = "내러티브"
	CategorySpelling     = "맞춤법/표기"
	CategoryFactuality   = "정보 사실성"

	CategorySubjectQuality = "피사체 퀄리티"
	CategoryPortrayal      = "인물 표현 점수"
	CategoryHashtagRarity  = "해시태그 희소성"
	CategoryEngagement     = "좋아요/댓글 반응"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	multiSpaceRe    = regexp.MustCompile(`\s{2,}`)
	punctRunRe      = regexp.MustCompile(`[!?.,]{3,}`)
	jamoRunRe       = regexp.MustCompile(`[ㄱ-ㅎㅏ-ㅣ]{3,}`)
	dateRe          = regexp.MustCompile(`20\d{2}[./년-]\s?\d{1,2}`)
	numberRe        = regexp.MustCompile(`\d+[.,]?\d*`)
)

// clamp15 bounds a raw score to the [1,5] star range.
func clamp15(v float64) float64 {
	return math.Max(1.0, math.Min(5.0, v))
}

// roundHalf rounds to the nearest 0.5 as round(2x)/2 with ties on the
// doubled value going to the nearest even integer.
func roundHalf(v float64) float64 {
	return math.RoundToEven(v*2) / 2
}

// sentenceStats splits text on sentence-ending punctuation runs and keeps
// fragments of at least two runes after trimming. Returns the fragment
// count and the average fragment length in runes.
func sentenceStats(text string) (int, float64) {
	if text == "" {
		return 0, 0
	}
	count := 0
	total := 0
	for _, part := range sentenceSplitRe.Split(text, -1) {
		trimmed := strings.TrimSpace(part)
		if n := utf8.RuneCountInString(trimmed); n >= 2 {
			count++
			total += n
		}
	}
	if count == 0 {
		return 0, 0
	}
	return count, float64(total) / float64(count)
}

// scoreImageQuality rewards image volume, high-resolution hints, and alt
// coverage. No images at all is a flat 2.0.
func scoreImageQuality(images []models.ImageRef) float64 {
	if len(images) == 0 {
		return 2.0
	}
	countScore := math.Min(2.0, float64(len(images))/5)
	sized := 0
	withAlt := 0
	for _, img := range images {
		if img.Width != nil && img.Height != nil && *img.Width >= 500 && *img.Height >= 500 {
			sized++
		}
		if img.Alt != "" {
			withAlt++
		}
	}
	total := float64(len(images))
	sizeScore := math.Min(1.5, float64(sized)/total*1.5)
	altScore := math.Min(1.5, float64(withAlt)/total*1.5)
	return clamp15(1.0 + countScore + sizeScore + altScore)
}

// scoreSincerity balances objectivity vocabulary, reference links, and
// first-person pronoun density (per 50 runes of text).
func scoreSincerity(text string, links int, lex Lexicons) float64 {
	if text == "" {
		return 2.0
	}
	keywordScore := math.Min(2.0, float64(containsCount(text, lex.Objectivity))*0.25)
	linkScore := math.Min(1.0, float64(links)*0.2)

	firstPerson := matchCount(text, lex.FirstPerson, false)
	ratio := float64(firstPerson) / math.Max(1.0, float64(utf8.RuneCountInString(text))/50)
	balanceScore := 0.6
	if ratio >= 0.2 && ratio <= 2.5 {
		balanceScore = 1.0
	}
	return clamp15(1.2 + keywordScore + linkScore + balanceScore)
}

// scoreNarrative judges sentence count, average sentence length, and the
// presence of structural connectives. No sentences at all is a flat 1.8.
func scoreNarrative(text string, lex Lexicons) float64 {
	sentenceCount, avgLen := sentenceStats(text)
	if sentenceCount == 0 {
		return 1.8
	}

	sentenceScore := 0.6
	if sentenceCount >= 6 && sentenceCount <= 80 {
		sentenceScore = 1.0
	}
	lengthScore := 0.7
	if avgLen >= 20 && avgLen <= 70 {
		lengthScore = 1.2
	}
	structureScore := math.Min(1.8, float64(containsCount(text, lex.Structure))*0.35)

	return clamp15(1.0 + sentenceScore + lengthScore + structureScore)
}

// scoreSpelling starts from 4.6 and subtracts penalties for whitespace
// runs, repeated punctuation, and bare-jamo runs. Empty text is 2.2.
func scoreSpelling(text string) float64 {
	if text == "" {
		return 2.2
	}
	weirdSpaces := len(multiSpaceRe.FindAllString(text, -1))
	repeatedPunct := len(punctRunRe.FindAllString(text, -1))
	typoLike := len(jamoRunRe.FindAllString(text, -1))

	penalties := float64(weirdSpaces)*0.1 + float64(repeatedPunct)*0.25 + float64(typoLike)*0.25
	return clamp15(4.6 - math.Min(3.2, penalties))
}

// scoreFactuality counts date patterns, numeric tokens, and sourcing
// vocabulary, plus a link bonus.
func scoreFactuality(text string, links int, lex Lexicons) float64 {
	if text == "" {
		return 2.0
	}
	dateHits := len(dateRe.FindAllString(text, -1))
	numberHits := len(numberRe.FindAllString(text, -1))
	sourceHits := containsCount(text, lex.Source)

	evidenceScore := math.Min(2.5, float64(dateHits)*0.5+float64(numberHits)*0.05+float64(sourceHits)*0.5)
	linkScore := math.Min(1.0, float64(links)*0.2)
	return clamp15(1.0 + evidenceScore + linkScore)
}

// scoreSubject reuses the image-quality formula for the feed variant.
func scoreSubject(images []models.ImageRef) float64 {
	return scoreImageQuality(images)
}

// scorePortrayal infers portrait focus from text clues and descriptive alt
// texts. No images at all is a flat 2.5.
func scorePortrayal(text string, images []models.ImageRef, lex Lexicons) float64 {
	if len(images) == 0 {
		return 2.5
	}
	portraitClues := matchCount(text, lex.Portrait, true)
	richAlt := 0
	for _, img := range images {
		if utf8.RuneCountInString(img.Alt) >= 8 {
			richAlt++
		}
	}
	return clamp15(2.0 + math.Min(1.5, float64(portraitClues)*0.3) + math.Min(1.5, float64(richAlt)*0.25))
}

// scoreHashtagRarity rewards unique, longer tags and penalizes short
// generic ones. No hashtags at all is a flat 2.0.
func scoreHashtagRarity(hashtags []string) float64 {
	if len(hashtags) == 0 {
		return 2.0
	}
	uniq := map[string]bool{}
	totalLen := 0
	shortGeneric := 0
	for _, tag := range hashtags {
		uniq[tag] = true
		n := utf8.RuneCountInString(tag)
		totalLen += n
		if n <= 3 {
			shortGeneric++
		}
	}
	total := float64(len(hashtags))
	avgLen := float64(totalLen) / total

	uniqScore := math.Min(2.2, float64(len(uniq))/total*2.2)
	lenScore := 0.7
	if avgLen >= 6 {
		lenScore = 1.2
	}
	genericPenalty := math.Min(1.2, float64(shortGeneric)*0.2)

	return clamp15(1.3 + uniqScore + lenScore - genericPenalty)
}

// scoreEngagement maps like/comment counts through log10 so large pages do
// not dominate. Both counts missing is a neutral 3.0.
func scoreEngagement(likes, comments *int) float64 {
	if likes == nil && comments == nil {
		return 3.0
	}
	likePart := 0.0
	if likes != nil {
		likePart = math.Min(2.0, math.Log10(math.Max(1, float64(*likes)))*0.8)
	}
	commentPart := 0.0
	if comments != nil {
		commentPart = math.Min(2.0, math.Log10(math.Max(1, float64(*comments+1)))*1.0)
	}
	return clamp15(1.0 + likePart + commentPart)
}

// BlogScores evaluates the blog rubric over a parsed record. Every value
// is clamped and rounded to the half-step grid.
func BlogScores(p models.ParsedContent, lex Lexicons) models.ScoreSet {
	return models.ScoreSet{
		{Name: CategoryImageQuality, Value: roundHalf(scoreImageQuality(p.Images))},
		{Name: CategorySincerity, Value: roundHalf(scoreSincerity(p.Text, p.Links, lex))},
		{Name: CategoryNarrative, Value: roundHalf(scoreNarrative(p.Text, lex))},
		{Name: CategorySpelling, Value: roundHalf(scoreSpelling(p.Text))},
		{Name: CategoryFactuality, Value: roundHalf(scoreFactuality(p.Text, p.Links, lex))},
	}
}

// FeedScores evaluates the social-feed rubric over a parsed record.
func FeedScores(p models.ParsedContent, lex Lexicons) models.ScoreSet {
	return models.ScoreSet{
		{Name: CategorySubjectQuality, Value: roundHalf(scoreSubject(p.Images))},
		{Name: CategoryPortrayal, Value: roundHalf(scorePortrayal(p.Text, p.Images, lex))},
		{Name: CategoryHashtagRarity, Value: roundHalf(scoreHashtagRarity(p.Hashtags))},
		{Name: CategoryEngagement, Value: roundHalf(scoreEngagement(p.Likes, p.Comments))},
	}
}
