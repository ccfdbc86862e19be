package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// Link repository constants.
const (
	defaultLinkListLimit = 50
	maxLinkListLimit     = 500

	// Link statuses accepted by LinkFilter.Status.
	LinkStatusBroken    = "broken"
	LinkStatusWarning   = "warning"
	LinkStatusOK        = "ok"
	LinkStatusUnchecked = "unchecked"

	linkSelectColumns = `id, url, link_type, anchor_text, source_id, source_type, source_field,
		status_code, status_text, is_broken, is_warning, redirect_url, redirect_count,
		response_time, error_message, last_check, is_dismissed, created_at, updated_at`
)

// LinkRepository handles database operations for discovered links.
type LinkRepository struct {
	db *sqlx.DB
}

// NewLinkRepository creates a new link repository.
func NewLinkRepository(db *sqlx.DB) *LinkRepository {
	return &LinkRepository{db: db}
}

// SaveLink inserts a candidate unless the same URL was already recorded for
// the same source and field. It reports whether a new row was created.
func (r *LinkRepository) SaveLink(ctx context.Context, c domain.Candidate) (bool, error) {
	query := `
		INSERT INTO links (url, link_type, anchor_text, source_id, source_type, source_field)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (url, source_id, source_type, source_field) DO NOTHING
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowxContext(
		ctx, query,
		c.URL, c.LinkType, c.AnchorText, c.SourceID, c.SourceType, c.SourceField,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to save link: %w", err)
	}

	return true, nil
}

// GetLinksToCheck returns up to limit links never checked or last checked
// before dueBefore, never-checked first.
func (r *LinkRepository) GetLinksToCheck(ctx context.Context, limit int, dueBefore time.Time) ([]*domain.Link, error) {
	query := `
		SELECT ` + linkSelectColumns + `
		FROM links
		WHERE last_check IS NULL OR last_check < $1
		ORDER BY last_check ASC NULLS FIRST, id ASC
		LIMIT $2
	`

	links := []*domain.Link{}
	if err := r.db.SelectContext(ctx, &links, query, dueBefore, limit); err != nil {
		return nil, fmt.Errorf("failed to get links to check: %w", err)
	}

	return links, nil
}

// CountLinksToCheck counts the links GetLinksToCheck would eventually return.
func (r *LinkRepository) CountLinksToCheck(ctx context.Context, dueBefore time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM links WHERE last_check IS NULL OR last_check < $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, dueBefore); err != nil {
		return 0, fmt.Errorf("failed to count links to check: %w", err)
	}

	return count, nil
}

// UpdateLinkResult writes a checker verdict and stamps last_check.
func (r *LinkRepository) UpdateLinkResult(ctx context.Context, id int64, result domain.CheckResult, checkedAt time.Time) error {
	query := `
		UPDATE links
		SET status_code = $1,
			status_text = $2,
			is_broken = $3,
			is_warning = $4,
			redirect_url = $5,
			redirect_count = $6,
			response_time = $7,
			error_message = $8,
			last_check = $9,
			updated_at = NOW()
		WHERE id = $10
	`

	res, execErr := r.db.ExecContext(
		ctx, query,
		nullableInt(result.StatusCode),
		result.StatusText,
		result.IsBroken,
		result.IsWarning,
		nullableString(result.RedirectURL),
		result.RedirectCount,
		result.ResponseTime,
		nullableString(result.ErrorMessage),
		checkedAt,
		id,
	)
	if err := execRequireRows(res, execErr, ErrLinkNotFound); err != nil {
		return fmt.Errorf("failed to update link %d: %w", id, err)
	}

	return nil
}

// GetLinksForRecheck returns non-dismissed broken or warning links last
// checked before olderThan, oldest first.
func (r *LinkRepository) GetLinksForRecheck(ctx context.Context, olderThan time.Time, limit int) ([]*domain.Link, error) {
	query := `
		SELECT ` + linkSelectColumns + `
		FROM links
		WHERE is_dismissed = FALSE
		  AND (is_broken = TRUE OR is_warning = TRUE)
		  AND last_check < $1
		ORDER BY last_check ASC, id ASC
		LIMIT $2
	`

	links := []*domain.Link{}
	if err := r.db.SelectContext(ctx, &links, query, olderThan, limit); err != nil {
		return nil, fmt.Errorf("failed to get links for recheck: %w", err)
	}

	return links, nil
}

// GetByID returns one link.
func (r *LinkRepository) GetByID(ctx context.Context, id int64) (*domain.Link, error) {
	query := `SELECT ` + linkSelectColumns + ` FROM links WHERE id = $1`

	var link domain.Link
	if err := r.db.GetContext(ctx, &link, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link %d: %w", id, err)
	}

	return &link, nil
}

// List returns links matching filter, newest first.
func (r *LinkRepository) List(ctx context.Context, filter domain.LinkFilter) ([]*domain.Link, error) {
	where, args, err := buildLinkWhere(filter)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLinkListLimit
	}
	limit = min(limit, maxLinkListLimit)
	offset := max(filter.Offset, 0)

	query := fmt.Sprintf(
		`SELECT %s FROM links %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		linkSelectColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	links := []*domain.Link{}
	if selectErr := r.db.SelectContext(ctx, &links, query, args...); selectErr != nil {
		return nil, fmt.Errorf("failed to list links: %w", selectErr)
	}

	return links, nil
}

// Count returns the number of links matching filter, ignoring paging.
func (r *LinkRepository) Count(ctx context.Context, filter domain.LinkFilter) (int, error) {
	where, args, err := buildLinkWhere(filter)
	if err != nil {
		return 0, err
	}

	var count int
	if countErr := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM links `+where, args...); countErr != nil {
		return 0, fmt.Errorf("failed to count links: %w", countErr)
	}

	return count, nil
}

// buildLinkWhere turns a filter into a WHERE clause with positional args.
func buildLinkWhere(filter domain.LinkFilter) (string, []any, error) {
	var (
		conditions []string
		args       []any
	)

	switch filter.Status {
	case "":
	case LinkStatusBroken:
		conditions = append(conditions, "is_broken = TRUE")
	case LinkStatusWarning:
		conditions = append(conditions, "is_warning = TRUE")
	case LinkStatusOK:
		conditions = append(conditions, "last_check IS NOT NULL AND is_broken = FALSE AND is_warning = FALSE")
	case LinkStatusUnchecked:
		conditions = append(conditions, "last_check IS NULL")
	default:
		return "", nil, fmt.Errorf("%w: unknown status %q", ErrInvalidFilter, filter.Status)
	}

	if filter.LinkType != "" {
		args = append(args, filter.LinkType)
		conditions = append(conditions, fmt.Sprintf("link_type = $%d", len(args)))
	}

	if !filter.IncludeDismissed {
		conditions = append(conditions, "is_dismissed = FALSE")
	}

	if len(conditions) == 0 {
		return "", args, nil
	}
	return "WHERE " + strings.Join(conditions, " AND "), args, nil
}

// SetDismissed hides a link from active lists, or restores it.
func (r *LinkRepository) SetDismissed(ctx context.Context, id int64, dismissed bool) error {
	query := `UPDATE links SET is_dismissed = $1, updated_at = NOW() WHERE id = $2`

	res, execErr := r.db.ExecContext(ctx, query, dismissed, id)
	if err := execRequireRows(res, execErr, ErrLinkNotFound); err != nil {
		return fmt.Errorf("failed to set dismissed on link %d: %w", id, err)
	}

	return nil
}

// GetStats aggregates verdicts. Dismissed links count only towards total
// and dismissed.
func (r *LinkRepository) GetStats(ctx context.Context) (*domain.LinkStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_broken AND NOT is_dismissed) AS broken,
			COUNT(*) FILTER (WHERE is_warning AND NOT is_dismissed) AS warnings,
			COUNT(*) FILTER (WHERE last_check IS NOT NULL AND NOT is_broken AND NOT is_warning AND NOT is_dismissed) AS ok,
			COUNT(*) FILTER (WHERE last_check IS NULL AND NOT is_dismissed) AS unchecked,
			COUNT(*) FILTER (WHERE is_dismissed) AS dismissed
		FROM links
	`

	var stats domain.LinkStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to get link stats: %w", err)
	}

	return &stats, nil
}
