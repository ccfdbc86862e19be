package domain

import "time"

// ScheduledTask is a deferred unit of work claimed by the task runner.
type ScheduledTask struct {
	Name     string    `db:"name"`
	Group    string    `db:"group_name"`
	RunAt    time.Time `db:"run_at"`
	Attempts int       `db:"attempts"`
}
