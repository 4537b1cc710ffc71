package compose

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"autoblog/internal/config"
	"autoblog/internal/feed"
)

// Completer is the generative service boundary.
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
}

// articleSystem is the fixed instruction for long-form generation.
const articleSystem = `You are an expert analyst-blogger. Write with depth and originality.
Rules:
- 900~1400 words.
- Start with a crisp thesis (1-2 sentences).
- Include 3-5 numbered 'Original Insights' with supporting evidence.
- Include 1 MECE-style framework table (markdown) if relevant.
- Provide a short 'Counterargument & Rebuttal' section.
- End with 'So what for operators' (3-5 bullets).
- Add a Sources list with exact URLs actually used.
- Avoid copying phrasing from sources > 20%. Paraphrase aggressively.
`

const titleSystem = `You generate only the single best title. No quotes, one line.`

const (
	// excerptLimit bounds the per-source quote embedded in the article prompt.
	excerptLimit = 1800
	// titleLeadLimit bounds the text shown to the title call.
	titleLeadLimit = 1200

	articleTemperature = 0.7
	titleTemperature   = 0.8
)

// Assembler turns a sector plus its picked candidates into a generation
// request and hands it to the external service.
type Assembler struct {
	ai Completer
}

func NewAssembler(ai Completer) *Assembler {
	return &Assembler{ai: ai}
}

// MakeArticle requests the long-form body for a sector from the picked
// candidates. There is no fallback: a failed body generation aborts the
// run, unlike title suggestion.
func (a *Assembler) MakeArticle(ctx context.Context, sector config.Sector, picked []feed.Candidate) (string, error) {
	body, err := a.ai.Complete(ctx, articleSystem, articlePrompt(sector, picked), articleTemperature)
	if err != nil {
		return "", fmt.Errorf("generate article for sector %q: %w", sector.Name, err)
	}
	return body, nil
}

// SuggestTitle asks for five title candidates and the single best one on
// one line. Any failure degrades to a deterministic templated title; this
// is the pipeline's only fallback path.
func (a *Assembler) SuggestTitle(ctx context.Context, sector config.Sector, picked []feed.Candidate) string {
	if len(picked) == 0 {
		return fallbackTitle(sector)
	}

	prompt := fmt.Sprintf(
		"Read the text below, propose 5 blog title candidates, then output only the single best one on **one line**:\n\n%s",
		truncateRunes(picked[0].Text, titleLeadLimit),
	)

	raw, err := a.ai.Complete(ctx, titleSystem, prompt, titleTemperature)
	if err != nil {
		slog.Warn("title suggestion failed, using fallback", "sector", sector.Name, "err", err)
		return fallbackTitle(sector)
	}

	title := firstLine(raw)
	if title == "" {
		return fallbackTitle(sector)
	}
	return title
}

func articlePrompt(sector config.Sector, picked []feed.Candidate) string {
	var urls strings.Builder
	for _, it := range picked {
		urls.WriteString("- " + it.URL + "\n")
	}

	var excerpts strings.Builder
	for i, it := range picked {
		if i > 0 {
			excerpts.WriteString("\n\n")
		}
		excerpts.WriteString(fmt.Sprintf("### Source %d\n%s", i+1, truncateRunes(it.Text, excerptLimit)))
	}

	return fmt.Sprintf(`Using the material below, write an original analytical post for the %q sector.

Sector tags: %s
Key phrases (include where natural): %s

Links I consulted:
%s
Material (excerpts):
%s
`, sector.Name, strings.Join(sector.Tags, ", "), strings.Join(sector.Keywords, ", "), urls.String(), excerpts.String())
}

func fallbackTitle(sector config.Sector) string {
	return fmt.Sprintf("%s briefing", sector.Name)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.Trim(strings.TrimSpace(s), `"`)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
