package post

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autoblog/internal/config"
	"autoblog/internal/feed"
	"autoblog/internal/metrics"
)

const (
	// fallbackSlug is used when normalization empties a title.
	fallbackSlug = "post"
	maxSlugLen   = 60
)

// Field is one front-matter entry. Rendering depends on the value's type:
// string slices become bracketed quoted lists, booleans lowercase literals,
// everything else a quoted string with embedded quotes escaped.
type Field struct {
	Key   string
	Value interface{}
}

// Save writes the generated article as a Markdown document with structured
// front-matter under root/<category-slug>/<date>-<title-slug>.md. An
// existing file at that path is silently replaced.
func Save(root string, sector config.Sector, picked []feed.Candidate, title, body string) (string, error) {
	today := time.Now().Format("2006-01-02")
	slug := truncateSlug(Slugify(title), maxSlugLen)

	sources := make([]string, 0, len(picked))
	for _, it := range picked {
		if it.URL != "" {
			sources = append(sources, it.URL)
		}
	}

	fields := []Field{
		{"title", strings.TrimSpace(title)},
		{"date", today + "T08:00:00-08:00"},
		{"tags", sector.Tags},
		{"categories", []string{sector.Name}},
		{"sources", sources},
		{"draft", false},
	}

	section := Slugify(sector.Name)
	dir := filepath.Join(root, section)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create content dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", today, slug))
	if err := os.WriteFile(path, []byte(RenderFrontMatter(fields)+body), 0o644); err != nil {
		return "", fmt.Errorf("write post %s: %w", path, err)
	}

	metrics.Global.IncrementPostsWritten()
	return path, nil
}

// RenderFrontMatter serializes fields as a front-matter block terminated by
// a closing delimiter line.
func RenderFrontMatter(fields []Field) string {
	var b strings.Builder
	b.WriteString("---\n")
	for _, f := range fields {
		switch v := f.Value.(type) {
		case []string:
			quoted := make([]string, len(v))
			for i, item := range v {
				quoted[i] = `"` + strings.ReplaceAll(item, `"`, `\"`) + `"`
			}
			b.WriteString(fmt.Sprintf("%s: [%s]\n", f.Key, strings.Join(quoted, ", ")))
		case bool:
			b.WriteString(fmt.Sprintf("%s: %t\n", f.Key, v))
		default:
			val := strings.ReplaceAll(fmt.Sprintf("%v", v), `"`, `\"`)
			b.WriteString(fmt.Sprintf("%s: \"%s\"\n", f.Key, val))
		}
	}
	b.WriteString("---\n")
	return b.String()
}

// Slugify normalizes a title to lowercase ASCII alphanumerics separated by
// single hyphens. Titles that normalize to nothing get a fallback token so
// the output path is never empty.
func Slugify(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}

	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return fallbackSlug
	}
	return slug
}

func truncateSlug(slug string, limit int) string {
	if len(slug) <= limit {
		return slug
	}
	slug = strings.Trim(slug[:limit], "-")
	if slug == "" {
		return fallbackSlug
	}
	return slug
}
