package rater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testFetchConfig() FetchConfig {
	config := DefaultFetchConfig()
	config.Timeout = 2 * time.Second
	config.AttemptDelay = 0
	return config
}

func TestFetcherHappyPath(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer server.Close()

	f := NewFetcher(testFetchConfig())
	body, notes := f.Fetch(context.Background(), server.URL)

	if body != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
	if len(notes) != 0 {
		t.Errorf("notes = %v, want none", notes)
	}
	if !strings.Contains(gotUA, "Chrome") {
		t.Errorf("User-Agent = %q, want browser-like", gotUA)
	}
	if !strings.HasPrefix(gotLang, "ko-KR") {
		t.Errorf("Accept-Language = %q, want Korean first", gotLang)
	}
}

func TestFetcherRetriesWithNextLanguage(t *testing.T) {
	var attempts atomic.Int32
	var langs []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		langs = append(langs, r.Header.Get("Accept-Language"))
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("second try"))
	}))
	defer server.Close()

	f := NewFetcher(testFetchConfig())
	body, notes := f.Fetch(context.Background(), server.URL)

	if body != "second try" {
		t.Errorf("body = %q", body)
	}
	if len(notes) != 1 || !strings.Contains(notes[0], "수집 시도 1 실패") {
		t.Errorf("notes = %v, want one attempt-failure note", notes)
	}
	if len(langs) != 2 || langs[0] == langs[1] {
		t.Errorf("langs = %v, want two distinct Accept-Language values", langs)
	}
}

func TestFetcherAllAttemptsFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(testFetchConfig())
	body, notes := f.Fetch(context.Background(), server.URL)

	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
	// One note per language attempt plus the terminal degraded-mode note.
	wantNotes := len(testFetchConfig().AcceptLanguages) + 1
	if len(notes) != wantNotes {
		t.Fatalf("got %d notes, want %d: %v", len(notes), wantNotes, notes)
	}
	if !strings.Contains(notes[0], "(HTTP 404)") {
		t.Errorf("notes[0] = %q, want HTTP status", notes[0])
	}
	if notes[len(notes)-1] != "URL 수집 실패로 제한된 평가를 수행했습니다." {
		t.Errorf("terminal note = %q", notes[len(notes)-1])
	}
}

func TestFetcherConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewFetcher(testFetchConfig())
	body, notes := f.Fetch(context.Background(), url)

	if body != "" {
		t.Errorf("body = %q, want empty", body)
	}
	if len(notes) == 0 {
		t.Fatal("want failure notes for unreachable server")
	}
	t.Logf("notes: %v", notes)
}

func TestFetcherBodyCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer server.Close()

	config := testFetchConfig()
	config.MaxBodyBytes = 10
	f := NewFetcher(config)
	body, _ := f.Fetch(context.Background(), server.URL)

	if len(body) != 10 {
		t.Errorf("body length = %d, want capped at 10", len(body))
	}
}
