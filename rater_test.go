package rater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testEvaluator() *Evaluator {
	config := DefaultConfig()
	config.Fetch.Timeout = 2 * time.Second
	config.Fetch.AttemptDelay = 0
	return New(config)
}

const blogFixture = `<!DOCTYPE html>
<html>
<head>
<title>주말 카페 후기</title>
<meta property="og:description" content="직접 다녀온 솔직 후기">
</head>
<body>
<p>처음 방문한 곳이라 기대가 컸습니다. 제가 직접 주문해 본 메뉴의 장점과 단점을 비교해 봤고,
근거가 될 만한 수치도 함께 적어 둡니다. 다음으로 분위기를 살펴봤는데 2024.05 기준으로
리뉴얼을 마친 상태였습니다. 결론부터 말하면 재방문 의사가 있습니다. 정리하자면 맛과
서비스 모두 준수했고, 공식 홈페이지 자료 출처도 확인했습니다.</p>
<img src="/photo1.jpg" width="800" height="600" alt="카페 외관 전경 사진">
<img src="/photo2.jpg" width="800" height="600" alt="시그니처 메뉴 사진">
<a href="https://example.com/menu">메뉴 안내</a>
<p>#주말카페투어 #성수동카페 #디저트맛집추천</p>
</body>
</html>`

func TestEvaluateBlog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(blogFixture))
	}))
	defer server.Close()

	report := testEvaluator().Evaluate(context.Background(), ContentTypeBlog, server.URL)

	if report.ID == "" {
		t.Error("report ID should be set")
	}
	if report.ContentType != contentTypeLabels[ContentTypeBlog] {
		t.Errorf("ContentType = %q, want the fixed blog label", report.ContentType)
	}
	if len(report.Notes) != 0 {
		t.Errorf("Notes = %v, want none on a clean fetch", report.Notes)
	}
	if len(report.Scores) != 5 {
		t.Fatalf("got %d scores, want 5 blog categories", len(report.Scores))
	}
	for _, cs := range report.Scores {
		if cs.Value < 1.0 || cs.Value > 5.0 {
			t.Errorf("%s = %v, out of range", cs.Name, cs.Value)
		}
		if _, ok := report.Reviews[cs.Name]; !ok {
			t.Errorf("missing review for %s", cs.Name)
		}
	}
	if len(report.Overview) != 3 {
		t.Errorf("got %d overview bullets, want 3", len(report.Overview))
	}
	if report.Average != roundHalf(report.Scores.Average()) {
		t.Errorf("Average = %v, want rounded mean %v", report.Average, roundHalf(report.Scores.Average()))
	}
	if !strings.Contains(report.Summary, "네이버 블로그 포스팅") {
		t.Errorf("Summary = %q, want content type label", report.Summary)
	}
	t.Logf("blog report: avg=%v summary=%s", report.Average, report.Summary)
}

func TestEvaluateFeed(t *testing.T) {
	html := `<html><head>
<meta property="og:description" content="성수동 카페에서 찍은 오늘의 셀카">
</head><body>
<img src="/selfie.jpg" alt="카페 창가에서 찍은 셀카 사진">
<p>오늘의 기록 #성수동카페기록 #주말셀카모음 {"like_count": 1523, "comment_count": 48}</p>
</body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(html))
	}))
	defer server.Close()

	report := testEvaluator().Evaluate(context.Background(), ContentTypeFeed, server.URL)

	if len(report.Scores) != 4 {
		t.Fatalf("got %d scores, want 4 feed categories", len(report.Scores))
	}
	if report.ContentType != contentTypeLabels[ContentTypeFeed] {
		t.Errorf("ContentType = %q, want the fixed feed label", report.ContentType)
	}
	if _, ok := report.Scores.Get(CategoryEngagement); !ok {
		t.Error("feed rubric should include engagement")
	}
	if len(report.Overview) != 4 {
		t.Errorf("got %d overview bullets, want 4", len(report.Overview))
	}
	engagement := report.Reviews[CategoryEngagement]
	if !strings.Contains(engagement, "1523") {
		t.Errorf("engagement review should cite the like count: %q", engagement)
	}
}

func TestEvaluateFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	report := testEvaluator().Evaluate(context.Background(), ContentTypeBlog, url)

	if len(report.Notes) == 0 {
		t.Fatal("degraded evaluation should carry fetch notes")
	}
	// Fallback scores for unavailable content.
	if v, _ := report.Scores.Get(CategoryImageQuality); v != 2.0 {
		t.Errorf("image quality fallback = %v, want 2.0", v)
	}
	if v, _ := report.Scores.Get(CategorySpelling); v != roundHalf(2.2) {
		t.Errorf("spelling fallback = %v", v)
	}
	if report.Summary == "" {
		t.Error("degraded report still needs a summary")
	}
}

func TestEvaluateUnknownTypeFallsBackToBlog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(blogFixture))
	}))
	defer server.Close()

	report := testEvaluator().Evaluate(context.Background(), "newsletter", server.URL)

	if _, ok := report.Scores.Get(CategoryImageQuality); !ok {
		t.Error("unknown type should use the blog rubric")
	}
	if !strings.Contains(report.Summary, "네이버 블로그 포스팅") {
		t.Errorf("unknown type should label as blog: %q", report.Summary)
	}
	// The report never echoes the raw tag; only the fixed labels escape.
	if report.ContentType != contentTypeLabels[ContentTypeBlog] {
		t.Errorf("ContentType = %q, want the fixed blog label", report.ContentType)
	}
}

func TestFetchPlainText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>본문 <b>텍스트</b></p><script>x()</script></body></html>"))
	}))
	defer server.Close()

	text, notes := testEvaluator().FetchPlainText(context.Background(), server.URL)
	if text != "본문 텍스트" {
		t.Errorf("text = %q", text)
	}
	if len(notes) != 0 {
		t.Errorf("notes = %v", notes)
	}
}
