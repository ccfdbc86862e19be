package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// ContentRepository reads the corpus that discovery parses.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new content repository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// ListContent returns up to limit units with an id greater than afterID, in
// id order. Pass the last id of one page to get the next.
func (r *ContentRepository) ListContent(ctx context.Context, afterID int64, limit int) ([]*domain.ContentUnit, error) {
	query := `
		SELECT id, source_type, title, body, permalink, builder, metadata, updated_at
		FROM content_items
		WHERE id > $1
		ORDER BY id ASC
		LIMIT $2
	`

	units := []*domain.ContentUnit{}
	if err := r.db.SelectContext(ctx, &units, query, afterID, limit); err != nil {
		return nil, fmt.Errorf("failed to list content: %w", err)
	}

	for _, unit := range units {
		if len(unit.RawMetadata) == 0 {
			continue
		}
		if err := json.Unmarshal(unit.RawMetadata, &unit.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata for content %d: %w", unit.ID, err)
		}
	}

	return units, nil
}
