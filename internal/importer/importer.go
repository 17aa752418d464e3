package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
)

type questionSource interface {
	Fetch(ctx context.Context, amount int, difficulty string) ([]Record, int, error)
}

type catalogWriter interface {
	GetCategories(ctx context.Context) ([]catalog.Category, error)
	CreateQuestion(ctx context.Context, q catalog.Question) (catalog.Question, error)
}

// Options controls a single import run.
type Options struct {
	Amount     int
	Difficulty string
	// FallbackCategory receives questions whose OpenTDB category matches no
	// catalog category. Zero skips them instead.
	FallbackCategory int64
}

// Report summarises an import run.
type Report struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Importer copies OpenTDB questions into the catalog.
type Importer struct {
	source questionSource
	target catalogWriter
	logger zerolog.Logger
}

// New builds an importer.
func New(source questionSource, target catalogWriter, logger zerolog.Logger) *Importer {
	return &Importer{
		source: source,
		target: target,
		logger: logger.With().Str("component", "importer").Logger(),
	}
}

// Run fetches and stores one batch. Questions that fail validation or have
// no category are skipped; a store outage aborts the run.
func (im *Importer) Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Amount <= 0 {
		return Report{}, fmt.Errorf("amount must be positive, got %d", opts.Amount)
	}
	if opts.Difficulty != "" {
		if _, ok := difficultyRatings[opts.Difficulty]; !ok {
			return Report{}, fmt.Errorf("unknown difficulty %q", opts.Difficulty)
		}
	}

	cats, err := im.target.GetCategories(ctx)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		return Report{}, fmt.Errorf("load categories: %w", err)
	}

	records, undecodable, err := im.source.Fetch(ctx, opts.Amount, opts.Difficulty)
	if err != nil {
		return Report{}, fmt.Errorf("fetch questions: %w", err)
	}

	report := Report{Fetched: len(records) + undecodable, Skipped: undecodable}
	for _, rec := range records {
		categoryID := matchCategory(rec.Category, cats)
		if categoryID == 0 {
			categoryID = opts.FallbackCategory
		}
		if categoryID == 0 {
			im.logger.Debug().Str("category", rec.Category).Msg("no matching category")
			report.Skipped++
			continue
		}

		created, err := im.target.CreateQuestion(ctx, catalog.Question{
			Text:       rec.Question,
			Answer:     rec.Answer,
			CategoryID: categoryID,
			Difficulty: rec.Difficulty,
		})
		if err != nil {
			if catalog.KindOf(err) == catalog.KindStoreUnavailable {
				return report, fmt.Errorf("store question: %w", err)
			}
			im.logger.Warn().Err(err).Str("question", rec.Question).Msg("skipping question")
			report.Skipped++
			continue
		}
		im.logger.Debug().Int64("question_id", created.ID).Int64("category_id", created.CategoryID).Msg("question imported")
		report.Imported++
	}

	im.logger.Info().
		Int("fetched", report.Fetched).
		Int("imported", report.Imported).
		Int("skipped", report.Skipped).
		Msg("import finished")
	return report, nil
}

// matchCategory compares whole names, case-insensitively, ignoring any
// ": topic" suffix. A combined OpenTDB category such as "Science & Nature"
// matches any of its parts.
func matchCategory(opentdbCategory string, cats []catalog.Category) int64 {
	top, _, _ := strings.Cut(opentdbCategory, ":")
	for _, part := range strings.Split(top, "&") {
		part = strings.TrimSpace(part)
		for _, c := range cats {
			if c.Name != "" && strings.EqualFold(part, c.Name) {
				return c.ID
			}
		}
	}
	return 0
}
