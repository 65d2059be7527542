package rater

import (
	"strings"
	"testing"

	"github.com/ohdongsik/contents-rate/models"
)

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{5.0, "매우 우수"},
		{4.5, "매우 우수"},
		{4.0, "양호"},
		{3.5, "양호"},
		{3.0, "보통"},
		{2.5, "보통"},
		{2.0, "개선 필요"},
		{1.0, "개선 필요"},
	}
	for _, tt := range tests {
		if got := scoreLabel(tt.score); got != tt.want {
			t.Errorf("scoreLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestSnippet(t *testing.T) {
	t.Run("empty text fallback", func(t *testing.T) {
		if got := snippet("   ", 50); got != "본문 텍스트를 충분히 추출하지 못했습니다." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("short text passes through", func(t *testing.T) {
		if got := snippet("짧은 문장", 50); got != "짧은 문장" {
			t.Errorf("got %q", got)
		}
	})

	t.Run("long text truncated with ellipsis", func(t *testing.T) {
		got := snippet(strings.Repeat("가", 100), 10)
		if got != strings.Repeat("가", 10)+"..." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("internal whitespace collapsed", func(t *testing.T) {
		if got := snippet("앞  \n  뒤", 50); got != "앞 뒤" {
			t.Errorf("got %q", got)
		}
	})
}

func TestBuildOverviews(t *testing.T) {
	lex := DefaultLexicons()

	t.Run("blog overview has three bullets", func(t *testing.T) {
		p := models.ParsedContent{Title: "제목", Text: "본문", Images: []models.ImageRef{}}
		bullets := buildBlogOverview(p)
		if len(bullets) != 3 {
			t.Fatalf("got %d bullets, want 3", len(bullets))
		}
		if !strings.HasPrefix(bullets[0], "페이지 제목/설명: ") {
			t.Errorf("bullet[0] = %q", bullets[0])
		}
	})

	t.Run("feed overview has four bullets", func(t *testing.T) {
		p := models.ParsedContent{
			Description: "성수동 카페에서 찍은 셀카",
			Text:        "성수동 카페에서 찍은 셀카",
			Hashtags:    []string{"ad쿠키"},
		}
		bullets := buildFeedOverview(p, lex)
		if len(bullets) != 4 {
			t.Fatalf("got %d bullets, want 4", len(bullets))
		}
		if !strings.Contains(bullets[1], "카페") {
			t.Errorf("place bullet should cite the detected clue: %q", bullets[1])
		}
		if !strings.Contains(bullets[3], "감지됨") {
			t.Errorf("product bullet should report the product tag: %q", bullets[3])
		}
	})
}

func TestDetectPlaceClues(t *testing.T) {
	lex := DefaultLexicons()

	if got := detectPlaceClues("아무 단서 없는 글", lex); got != "장소 단서를 명확히 확인하지 못했습니다." {
		t.Errorf("got %q", got)
	}

	got := detectPlaceClues("Seoul의 카페와 호텔, 해변, 공원, 스튜디오까지 다녀옴", lex)
	if !strings.HasPrefix(got, "배경 장소 단서: ") {
		t.Fatalf("got %q", got)
	}
	// At most four clues listed.
	if n := len(strings.Split(strings.TrimPrefix(got, "배경 장소 단서: "), ", ")); n != 4 {
		t.Errorf("listed %d clues, want 4", n)
	}
}

func TestBuildReviews(t *testing.T) {
	lex := DefaultLexicons()
	p := models.ParsedContent{Text: "본문", WordCount: 1}

	blogScores := BlogScores(p, lex)
	reviews := buildBlogReviews(p, blogScores)
	if len(reviews) != len(blogScores) {
		t.Fatalf("got %d reviews, want %d", len(reviews), len(blogScores))
	}
	for _, cs := range blogScores {
		review := reviews[cs.Name]
		if !strings.HasPrefix(review, scoreLabel(cs.Value)) {
			t.Errorf("%s review should lead with its label: %q", cs.Name, review)
		}
		if !strings.Contains(review, "/5)") {
			t.Errorf("%s review missing score fragment: %q", cs.Name, review)
		}
	}

	feedScores := FeedScores(p, lex)
	feedReviews := buildFeedReviews(p, feedScores)
	engagement := feedReviews[CategoryEngagement]
	if !strings.Contains(engagement, "좋아요 미확인") || !strings.Contains(engagement, "댓글 미확인") {
		t.Errorf("missing counts should render as 미확인: %q", engagement)
	}
}

func TestBuildSummary(t *testing.T) {
	scores := models.ScoreSet{
		{Name: "첫째", Value: 4.0},
		{Name: "둘째", Value: 4.0},
		{Name: "셋째", Value: 2.0},
		{Name: "넷째", Value: 2.0},
	}
	summary := buildSummary("네이버 블로그 포스팅", 3.0, scores)

	// First-encountered category wins ties on both ends.
	if !strings.Contains(summary, "'첫째'") {
		t.Errorf("strongest tie should pick the first category: %q", summary)
	}
	if !strings.Contains(summary, "'셋째'") {
		t.Errorf("weakest tie should pick the first category: %q", summary)
	}
	if !strings.Contains(summary, "핵심 품질 지표에서 보완이 필요합니다.") {
		t.Errorf("tone for 3.0 average wrong: %q", summary)
	}
	if !strings.Contains(summary, "네이버 블로그 포스팅") {
		t.Errorf("summary should name the content type: %q", summary)
	}
}
