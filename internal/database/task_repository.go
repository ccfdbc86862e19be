package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

// TaskRepository persists deferred tasks in scheduled_tasks.
//
// A task row is pending while claim_token is NULL or its claim has lapsed.
// Completing a task deletes it only when the caller still holds the claim.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Upsert schedules name to run at or after runAt. A pending entry is left
// untouched; a claimed entry is replaced by a fresh pending one so that a
// running handler can re-arm itself.
func (r *TaskRepository) Upsert(ctx context.Context, name, group string, runAt time.Time) error {
	query := `
		INSERT INTO scheduled_tasks (name, group_name, run_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET
			run_at = EXCLUDED.run_at,
			claim_token = NULL,
			claimed_until = NULL,
			attempts = 0
		WHERE scheduled_tasks.claim_token IS NOT NULL
	`

	if _, err := r.db.ExecContext(ctx, query, name, group, runAt); err != nil {
		return fmt.Errorf("failed to schedule task %s: %w", name, err)
	}

	return nil
}

// Exists reports whether name has an entry, claimed or not.
func (r *TaskRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM scheduled_tasks WHERE name = $1)`
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, fmt.Errorf("failed to look up task %s: %w", name, err)
	}
	return exists, nil
}

// Delete removes name. Removing a missing task is not an error.
func (r *TaskRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scheduled_tasks WHERE name = $1`, name); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", name, err)
	}
	return nil
}

// DeleteGroup removes every task in group and returns how many were removed.
func (r *TaskRepository) DeleteGroup(ctx context.Context, group string) (int, error) {
	n, err := execRowsAffected(r.db.ExecContext(ctx, `DELETE FROM scheduled_tasks WHERE group_name = $1`, group))
	if err != nil {
		return 0, fmt.Errorf("failed to delete task group %s: %w", group, err)
	}
	return n, nil
}

// Claim takes up to limit due tasks for ttl under token. Rows locked by
// another claimer are skipped.
func (r *TaskRepository) Claim(
	ctx context.Context, token uuid.UUID, now time.Time, ttl time.Duration, limit int,
) ([]*domain.ScheduledTask, error) {
	query := `
		UPDATE scheduled_tasks
		SET claim_token = $1,
			claimed_until = $2,
			attempts = attempts + 1
		WHERE name IN (
			SELECT name FROM scheduled_tasks
			WHERE run_at <= $3
			  AND (claimed_until IS NULL OR claimed_until < $3)
			ORDER BY run_at ASC
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING name, group_name, run_at, attempts
	`

	tasks := []*domain.ScheduledTask{}
	if err := r.db.SelectContext(ctx, &tasks, query, token, now.Add(ttl), now, limit); err != nil {
		return nil, fmt.Errorf("failed to claim tasks: %w", err)
	}

	return tasks, nil
}

// Complete deletes name if token still holds its claim. It reports whether
// the row was deleted; false means the task was re-armed or cancelled.
func (r *TaskRepository) Complete(ctx context.Context, name string, token uuid.UUID) (bool, error) {
	query := `DELETE FROM scheduled_tasks WHERE name = $1 AND claim_token = $2`

	n, err := execRowsAffected(r.db.ExecContext(ctx, query, name, token))
	if err != nil {
		return false, fmt.Errorf("failed to complete task %s: %w", name, err)
	}

	return n > 0, nil
}
