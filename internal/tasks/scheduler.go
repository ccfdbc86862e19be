// Package tasks runs deferred and periodic work.
//
// Deferred tasks live in PostgreSQL so a continuation survives a restart:
// a handler schedules its own next invocation and the Runner claims due
// entries. Delivery is at least once; handlers must tolerate duplicates.
package tasks

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Scheduler defers named tasks.
type Scheduler interface {
	// ScheduleSingle arranges for name to run at or after notBefore. A
	// pending entry for name is kept as is.
	ScheduleSingle(ctx context.Context, notBefore time.Time, name string) error
	IsScheduled(ctx context.Context, name string) (bool, error)
	Cancel(ctx context.Context, name string) error
	// CancelGroup removes every task whose name starts with group + ".".
	CancelGroup(ctx context.Context, group string) error
}

// Store is the persistence PostgresScheduler needs.
type Store interface {
	Upsert(ctx context.Context, name, group string, runAt time.Time) error
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
	DeleteGroup(ctx context.Context, group string) (int, error)
}

// GroupOf returns the group of a task name: "linkcheck.process_queue"
// belongs to "linkcheck". A name without a dot is its own group.
func GroupOf(name string) string {
	group, _, found := strings.Cut(name, ".")
	if !found {
		return name
	}
	return group
}

// PostgresScheduler implements Scheduler on the scheduled_tasks table.
type PostgresScheduler struct {
	store Store
}

// NewPostgresScheduler creates a scheduler backed by store.
func NewPostgresScheduler(store Store) *PostgresScheduler {
	return &PostgresScheduler{store: store}
}

// ScheduleSingle implements Scheduler.
func (s *PostgresScheduler) ScheduleSingle(ctx context.Context, notBefore time.Time, name string) error {
	if name == "" {
		return fmt.Errorf("schedule task: empty name")
	}
	return s.store.Upsert(ctx, name, GroupOf(name), notBefore)
}

// IsScheduled implements Scheduler.
func (s *PostgresScheduler) IsScheduled(ctx context.Context, name string) (bool, error) {
	return s.store.Exists(ctx, name)
}

// Cancel implements Scheduler.
func (s *PostgresScheduler) Cancel(ctx context.Context, name string) error {
	return s.store.Delete(ctx, name)
}

// CancelGroup implements Scheduler.
func (s *PostgresScheduler) CancelGroup(ctx context.Context, group string) error {
	_, err := s.store.DeleteGroup(ctx, group)
	return err
}
