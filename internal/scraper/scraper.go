package scraper

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"autoblog/internal/ratelimit"
)

// Extractor pulls the readable body text out of article pages.
type Extractor struct {
	client *http.Client
	pacer  *ratelimit.Pacer
}

func New(timeout time.Duration, pacer *ratelimit.Pacer) *Extractor {
	return &Extractor{
		client: &http.Client{Timeout: timeout},
		pacer:  pacer,
	}
}

// ExtractText fetches a page and returns its main body text. Comment
// sections and boilerplate are stripped. An empty result is reported as
// an error so callers can treat "nothing readable" uniformly.
func (e *Extractor) ExtractText(url string) (string, error) {
	e.pacer.Wait()

	resp, err := e.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("error loading page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %v", err)
	}

	content := extractReadable(doc)
	if content == "" {
		return "", fmt.Errorf("can't get content")
	}
	return content, nil
}

// extractReadable walks a selector cascade from most to least specific and
// keeps the first selector that yields enough paragraphs.
func extractReadable(doc *goquery.Document) string {
	// Drop comment threads and navigation before extraction
	doc.Find("#comments, .comments, .comment, .comment-list, nav, header, footer, aside, script, style").Remove()

	selectors := []string{
		"article p",
		".article-body p",
		".article-content p",
		".post-content p",
		".entry-content p",
		".content p",
		"main p",
		"#content p",
		"p",
	}

	var paragraphs []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" && len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
		paragraphs = paragraphs[:0]
	}

	// A thin page may legitimately have fewer than 3 paragraphs; the last
	// pass over bare <p> keeps whatever it found.
	if len(paragraphs) == 0 {
		doc.Find("p").Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text != "" && len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	return cleanText(strings.Join(paragraphs, "\n\n"))
}

// cleanText normalizes whitespace and drops boilerplate lines.
func cleanText(content string) string {
	if content == "" {
		return ""
	}

	junkIndicators := []string{
		"cookie", "gdpr", "privacy policy", "subscribe to our newsletter",
		"sign up", "log in", "advertisement", "sponsored", "read more:",
		"click here", "follow us", "share this article", "related articles",
	}

	lines := strings.Split(content, "\n")
	var clean []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			clean = append(clean, "")
			continue
		}

		lower := strings.ToLower(line)
		isJunk := false
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				isJunk = true
				break
			}
		}
		if isJunk {
			continue
		}
		clean = append(clean, line)
	}

	result := strings.Join(clean, "\n")
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(result)
}

// WordCount reports the number of whitespace-separated words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}
