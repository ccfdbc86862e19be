package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/coordination"
)

// SpecOff disables a periodic job.
const SpecOff = "off"

// Periodic maintenance job names, also used as lock names. Manual runs go
// through Trigger under the same names so they never overlap a scheduled run.
const (
	JobScan    = "scan"
	JobRecheck = "recheck"
	JobCleanup = "cleanup"
)

// CronManager runs periodic maintenance jobs. Each run is wrapped in a guard
// so that only one instance executes a given job at a time.
type CronManager struct {
	cron   *cron.Cron
	parser cron.Parser
	guard  coordination.Guard
	logger infralogger.Logger

	mu      sync.Mutex
	ctx     context.Context
	entries map[string]cron.EntryID
}

// NewCronManager creates a manager using the standard 5-field cron syntax.
func NewCronManager(guard coordination.Guard, log infralogger.Logger) *CronManager {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	cronLog := cronLogger{logger: log}

	return &CronManager{
		cron:    cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cronLog)), cron.WithLogger(cronLog)),
		parser:  parser,
		guard:   guard,
		logger:  log,
		ctx:     context.Background(),
		entries: make(map[string]cron.EntryID),
	}
}

// Add registers fn under name. A spec of SpecOff leaves the job disabled.
func (m *CronManager) Add(name, spec string, fn Handler) error {
	if spec == SpecOff {
		m.logger.Info("Periodic job disabled", infralogger.String("job", name))
		return nil
	}

	schedule, err := m.parser.Parse(spec)
	if err != nil {
		return fmt.Errorf("invalid cron spec %q for %s: %w", spec, name, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[name]; exists {
		return fmt.Errorf("periodic job %s already registered", name)
	}

	m.entries[name] = m.cron.Schedule(schedule, cron.FuncJob(func() {
		m.runGuarded(name, fn)
	}))

	m.logger.Info("Periodic job registered",
		infralogger.String("job", name),
		infralogger.String("spec", spec),
	)
	return nil
}

// Start begins firing jobs. Job contexts derive from ctx.
func (m *CronManager) Start(ctx context.Context) {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	m.cron.Start()
}

// Stop stops scheduling and waits for running jobs to finish.
func (m *CronManager) Stop() {
	<-m.cron.Stop().Done()
}

// Trigger runs name's job now, through the same guard as a scheduled run.
// It reports whether the job ran.
func (m *CronManager) Trigger(ctx context.Context, name string, fn Handler) (bool, error) {
	return m.guard.RunExclusive(ctx, name, fn)
}

// Jobs returns the registered job names.
func (m *CronManager) Jobs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.entries))
	for name := range m.entries {
		names = append(names, name)
	}
	return names
}

func (m *CronManager) runGuarded(name string, fn Handler) {
	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	ran, err := m.guard.RunExclusive(ctx, name, fn)
	switch {
	case err != nil:
		m.logger.Error("Periodic job failed", infralogger.String("job", name), infralogger.Error(err))
	case !ran:
		m.logger.Debug("Periodic job skipped; another instance holds it", infralogger.String("job", name))
	}
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct {
	logger infralogger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, infralogger.Any("details", keysAndValues))
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, infralogger.Error(err), infralogger.Any("details", keysAndValues))
}
