package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"autoblog/internal/compose"
	"autoblog/internal/config"
	"autoblog/internal/dedup"
	"autoblog/internal/feed"
	"autoblog/internal/llm"
	"autoblog/internal/metrics"
	"autoblog/internal/post"
	"autoblog/internal/ratelimit"
	"autoblog/internal/scraper"
)

// CandidateSource yields usable source articles for a set of feeds.
type CandidateSource interface {
	Fetch(feedURLs []string, maxPerFeed int) []feed.Candidate
}

// ArticleMaker is the generation boundary the scheduler drives.
type ArticleMaker interface {
	MakeArticle(ctx context.Context, sector config.Sector, picked []feed.Candidate) (string, error)
	SuggestTitle(ctx context.Context, sector config.Sector, picked []feed.Candidate) string
}

// SaveFunc persists one generated post and returns its path.
type SaveFunc func(root string, sector config.Sector, picked []feed.Candidate, title, body string) (string, error)

// Scheduler round-robins across sectors, producing one post per
// successful turn, until the requested count is reached.
type Scheduler struct {
	cfg     *config.Config
	sectors []config.Sector
	source  CandidateSource
	maker   ArticleMaker
	rng     *rand.Rand
	save    SaveFunc
}

func NewScheduler(cfg *config.Config, sectors []config.Sector, source CandidateSource, maker ArticleMaker, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		sectors: sectors,
		source:  source,
		maker:   maker,
		rng:     rng,
		save:    post.Save,
	}
}

// Generate runs the round-robin loop until count posts are written and
// returns their paths. A sector that yields no candidates is skipped for
// this turn and retried on its next turn; only the barren-rounds budget
// (when enabled) turns persistent emptiness into an error.
func (s *Scheduler) Generate(ctx context.Context, count int) ([]string, error) {
	if count < 1 {
		count = 1
	}
	if len(s.sectors) == 0 {
		return nil, fmt.Errorf("no sectors configured")
	}

	var written []string
	si := 0
	barrenRounds := 0
	yieldedThisRound := false

	for len(written) < count {
		if si > 0 && si%len(s.sectors) == 0 {
			if yieldedThisRound {
				barrenRounds = 0
			} else {
				barrenRounds++
				if s.cfg.MaxBarrenRounds > 0 && barrenRounds >= s.cfg.MaxBarrenRounds {
					return written, fmt.Errorf("no sector yielded candidates in %d consecutive rounds", barrenRounds)
				}
			}
			yieldedThisRound = false
		}

		sector := s.sectors[si%len(s.sectors)]
		si++

		items := dedup.Dedup(s.rng, s.source.Fetch(sector.Feeds, s.cfg.MaxPerFeed))
		if len(items) == 0 {
			slog.Debug("sector yielded no candidates, will retry next round", "sector", sector.Name)
			continue
		}
		yieldedThisRound = true

		picked := items
		if len(picked) > s.cfg.PickCount {
			picked = picked[:s.cfg.PickCount]
		}

		title := s.maker.SuggestTitle(ctx, sector, picked)

		body, err := s.maker.MakeArticle(ctx, sector, picked)
		if err != nil {
			// No fallback body: a failed generation aborts the run.
			return written, err
		}

		path, err := s.save(s.cfg.ContentRoot, sector, picked, title, body)
		if err != nil {
			return written, err
		}

		written = append(written, path)
		slog.Info("saved post", "path", path, "sector", sector.Name, "title", title)
		fmt.Println("saved:", path)
	}

	return written, nil
}

// Run wires the production pipeline from configuration and generates
// count posts.
func Run(ctx context.Context, count int) error {
	start := time.Now()
	defer func() {
		metrics.Global.RecordRunDuration(time.Since(start))
	}()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sectors, err := config.LoadSectors(cfg.SectorsPath)
	if err != nil {
		return fmt.Errorf("load sectors: %w", err)
	}
	slog.Info("sectors loaded", "count", len(sectors), "path", cfg.SectorsPath)

	extractor := scraper.New(cfg.RequestTimeout, ratelimit.NewPacer(cfg.FetchDelay))
	fetcher := feed.NewFetcher(extractor, cfg.MinWords)
	assembler := compose.NewAssembler(llm.NewClient(cfg.OpenAIAPIKey, cfg.Model))
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	sched := NewScheduler(cfg, sectors, fetcher, assembler, rng)

	written, err := sched.Generate(ctx, count)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	metrics.Global.SetLastRun()
	fmt.Printf("Generated %d post(s).\n", len(written))
	return nil
}
