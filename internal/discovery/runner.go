package discovery

import (
	"context"
	"fmt"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

const defaultPageSize = 100

// ContentSource pages through the corpus in ascending id order.
type ContentSource interface {
	ListContent(ctx context.Context, afterID int64, limit int) ([]*domain.ContentUnit, error)
}

// LinkSaver persists candidates. It reports whether a new row was created.
type LinkSaver interface {
	SaveLink(ctx context.Context, c domain.Candidate) (bool, error)
}

// Result summarizes one discovery pass.
type Result struct {
	Units   int `json:"units"`
	Found   int `json:"found"`
	Created int `json:"created"`
}

// Runner walks the corpus and saves every discovered candidate.
type Runner struct {
	content  ContentSource
	links    LinkSaver
	adapters []Adapter
	custom   *CustomFieldExtractor
	pageSize int
	logger   infralogger.Logger
}

// NewRunner creates a discovery runner. A pageSize of zero uses the default.
func NewRunner(
	content ContentSource,
	links LinkSaver,
	adapters []Adapter,
	custom *CustomFieldExtractor,
	pageSize int,
	log infralogger.Logger,
) *Runner {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if log == nil {
		log = infralogger.NewNop()
	}

	return &Runner{
		content:  content,
		links:    links,
		adapters: adapters,
		custom:   custom,
		pageSize: pageSize,
		logger:   log,
	}
}

// Extract returns the candidates for one unit: the selected body adapter's
// output merged with custom field URLs.
func (r *Runner) Extract(unit *domain.ContentUnit) []domain.Candidate {
	var body []domain.Candidate
	if adapter := SelectAdapter(r.adapters, unit); adapter != nil {
		body = adapter.Extract(unit)
	}
	if r.custom == nil {
		return body
	}

	c := &collector{unit: unit, seen: make(map[string]struct{})}
	c.merge(body)
	c.merge(r.custom.Extract(unit))
	return c.out
}

// Discover saves candidates from every content unit. Existing links are left
// untouched.
func (r *Runner) Discover(ctx context.Context) (*Result, error) {
	result := &Result{}
	var afterID int64

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		units, err := r.content.ListContent(ctx, afterID, r.pageSize)
		if err != nil {
			return result, fmt.Errorf("list content after %d: %w", afterID, err)
		}

		for _, unit := range units {
			if err = r.saveUnit(ctx, unit, result); err != nil {
				return result, err
			}
			afterID = unit.ID
		}

		if len(units) < r.pageSize {
			break
		}
	}

	r.logger.Info("Link discovery finished",
		infralogger.Int("units", result.Units),
		infralogger.Int("found", result.Found),
		infralogger.Int("created", result.Created),
	)

	return result, nil
}

func (r *Runner) saveUnit(ctx context.Context, unit *domain.ContentUnit, result *Result) error {
	candidates := r.Extract(unit)
	result.Units++
	result.Found += len(candidates)

	for _, cand := range candidates {
		created, err := r.links.SaveLink(ctx, cand)
		if err != nil {
			return fmt.Errorf("save link from content %d: %w", unit.ID, err)
		}
		if created {
			result.Created++
		}
	}

	r.logger.Debug("Content unit scanned",
		infralogger.Int64("content_id", unit.ID),
		infralogger.Int("candidates", len(candidates)),
	)
	return nil
}
