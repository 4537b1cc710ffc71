package feed

import (
	"log/slog"

	"github.com/mmcdole/gofeed"

	"autoblog/internal/metrics"
	"autoblog/internal/scraper"
)

// Candidate is a single fetched-and-extracted source article under
// consideration for a generated post.
type Candidate struct {
	Title string
	URL   string
	Text  string
}

// TextExtractor resolves a page URL to its readable body text.
type TextExtractor interface {
	ExtractText(url string) (string, error)
}

// Fetcher collects candidates from syndication feeds. Acquisition is
// sequential and best-effort: a broken feed or an unreadable page is
// skipped, never fatal.
type Fetcher struct {
	parser    *gofeed.Parser
	extractor TextExtractor
	minWords  int
}

func NewFetcher(extractor TextExtractor, minWords int) *Fetcher {
	return &Fetcher{
		parser:    gofeed.NewParser(),
		extractor: extractor,
		minWords:  minWords,
	}
}

// Fetch retrieves up to maxPerFeed entries per feed in feed order,
// extracts each linked page's text, and keeps entries with a link and at
// least minWords words of body text. The worst case is an empty slice.
func (f *Fetcher) Fetch(feedURLs []string, maxPerFeed int) []Candidate {
	var items []Candidate

	for _, feedURL := range feedURLs {
		parsed, err := f.parser.ParseURL(feedURL)
		if err != nil {
			slog.Warn("error parsing feed", "url", feedURL, "err", err)
			metrics.Global.IncrementFeedErrors()
			continue
		}
		metrics.Global.IncrementFeedsFetched()

		entries := parsed.Items
		if len(entries) > maxPerFeed {
			entries = entries[:maxPerFeed]
		}
		metrics.Global.AddCandidatesSeen(int64(len(entries)))

		for _, entry := range entries {
			if entry.Link == "" {
				continue
			}

			text, err := f.extractor.ExtractText(entry.Link)
			if err != nil {
				slog.Debug("skipping entry", "url", entry.Link, "err", err)
				continue
			}
			if scraper.WordCount(text) < f.minWords {
				slog.Debug("entry text too short", "url", entry.Link, "words", scraper.WordCount(text))
				continue
			}

			items = append(items, Candidate{
				Title: entry.Title,
				URL:   entry.Link,
				Text:  text,
			})
		}

		slog.Debug("feed processed", "url", feedURL, "kept", len(items))
	}

	metrics.Global.AddCandidatesKept(int64(len(items)))
	return items
}
