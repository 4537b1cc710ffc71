package feed

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// fakeExtractor maps page URLs to canned text.
type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) ExtractText(url string) (string, error) {
	if text, ok := f.texts[url]; ok {
		return text, nil
	}
	return "", fmt.Errorf("can't get content")
}

func rssFeed(items ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>test</title>%s</channel></rss>`, strings.Join(items, ""))
}

func rssItem(title, link string) string {
	if link == "" {
		return fmt.Sprintf(`<item><title>%s</title></item>`, title)
	}
	return fmt.Sprintf(`<item><title>%s</title><link>%s</link></item>`, title, link)
}

func longText(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words))
}

func TestFetch_FiltersAndKeeps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, rssFeed(
			rssItem("good", "https://example.com/good"),
			rssItem("no link", ""),
			rssItem("too short", "https://example.com/short"),
			rssItem("unreadable", "https://example.com/broken"),
		))
	}))
	defer srv.Close()

	extractor := &fakeExtractor{texts: map[string]string{
		"https://example.com/good":  longText(250),
		"https://example.com/short": longText(50),
	}}

	f := NewFetcher(extractor, 200)
	items := f.Fetch([]string{srv.URL}, 8)

	if len(items) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(items))
	}
	if items[0].Title != "good" || items[0].URL != "https://example.com/good" {
		t.Errorf("unexpected candidate: %+v", items[0])
	}
	if items[0].Text != longText(250) {
		t.Errorf("candidate text not taken from extractor")
	}
}

func TestFetch_RespectsPerFeedCap(t *testing.T) {
	var entries []string
	texts := map[string]string{}
	for i := 0; i < 10; i++ {
		link := fmt.Sprintf("https://example.com/%d", i)
		entries = append(entries, rssItem(fmt.Sprintf("entry %d", i), link))
		texts[link] = longText(300)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(entries...))
	}))
	defer srv.Close()

	f := NewFetcher(&fakeExtractor{texts: texts}, 200)
	items := f.Fetch([]string{srv.URL}, 3)

	if len(items) != 3 {
		t.Fatalf("expected per-feed cap of 3, got %d", len(items))
	}
	// Entries are taken in feed order.
	for i, it := range items {
		if want := fmt.Sprintf("entry %d", i); it.Title != want {
			t.Errorf("item %d = %q, want %q", i, it.Title, want)
		}
	}
}

func TestFetch_BrokenFeedIsSkipped(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not a feed at all <<<")
	}))
	defer broken.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed(rssItem("ok", "https://example.com/ok")))
	}))
	defer good.Close()

	f := NewFetcher(&fakeExtractor{texts: map[string]string{
		"https://example.com/ok": longText(250),
	}}, 200)

	items := f.Fetch([]string{broken.URL, good.URL}, 8)
	if len(items) != 1 {
		t.Fatalf("broken feed should not abort the batch; got %d items", len(items))
	}
}

func TestFetch_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, rssFeed())
	}))
	defer srv.Close()

	f := NewFetcher(&fakeExtractor{texts: nil}, 200)
	items := f.Fetch([]string{srv.URL}, 8)
	if len(items) != 0 {
		t.Errorf("expected empty result, got %d", len(items))
	}
}
