package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	infraredis "github.com/jonesrussell/north-cloud/link-checker/infrastructure/redis"
	"github.com/jonesrussell/north-cloud/link-checker/internal/checker"
	"github.com/jonesrussell/north-cloud/link-checker/internal/config"
	"github.com/jonesrussell/north-cloud/link-checker/internal/coordination"
	"github.com/jonesrussell/north-cloud/link-checker/internal/database"
	"github.com/jonesrussell/north-cloud/link-checker/internal/discovery"
	"github.com/jonesrussell/north-cloud/link-checker/internal/metrics"
	"github.com/jonesrussell/north-cloud/link-checker/internal/notify"
	"github.com/jonesrussell/north-cloud/link-checker/internal/progress"
	"github.com/jonesrussell/north-cloud/link-checker/internal/scan"
	"github.com/jonesrussell/north-cloud/link-checker/internal/tasks"
)

const lockPrefix = "link-checker:lock:"

// loadConfig loads configuration and applies --debug. Validation is left to
// callers that need a database.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if viper.GetBool("debug") {
		cfg.Service.Debug = true
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLogger creates the service logger from configuration.
func newLogger(cfg *config.Config) (infralogger.Logger, error) {
	log, err := infralogger.New(infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(infralogger.String("service", cfg.Service.Name)), nil
}

// app holds the wired dependencies shared by the database-backed commands.
type app struct {
	cfg     *config.Config
	logger  infralogger.Logger
	db      *sqlx.DB
	redis   *redis.Client
	metrics *metrics.Metrics

	links    *database.LinkRepository
	scans    *database.ScanRepository
	taskRepo *database.TaskRepository
	checker  *checker.Checker
	guard    coordination.Guard
	orch     *scan.Orchestrator
}

// newApp validates configuration, connects to Postgres and, when enabled,
// Redis, then wires the orchestrator.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgresConnection(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("Database connected",
		infralogger.String("host", cfg.Database.Host),
		infralogger.Int("port", cfg.Database.Port),
		infralogger.String("database", cfg.Database.Database),
	)

	a := &app{
		cfg:      cfg,
		logger:   log,
		db:       db,
		metrics:  metrics.New(nil),
		links:    database.NewLinkRepository(db),
		scans:    database.NewScanRepository(db),
		taskRepo: database.NewTaskRepository(db),
		guard:    coordination.NewLocalGuard(),
	}

	cache := progress.Cache(progress.NopCache{})
	var publisher *notify.Publisher
	client, redisErr := infraredis.Connect(ctx, cfg.Redis)
	switch {
	case errors.Is(redisErr, infraredis.ErrDisabled):
		// Postgres alone
	case redisErr != nil:
		// The cache, events and lock are optional; the database is the source of truth.
		log.Warn("Redis unavailable, continuing without cache and events", infralogger.Error(redisErr))
	default:
		a.redis = client
		cache = progress.NewRedisCache(client, log)
		publisher = notify.NewPublisher(client, log)
		a.guard = coordination.NewRedisGuard(client, lockPrefix, coordination.LockConfig{})
	}

	a.checker = checker.New(cfg.Checker, checker.WithRecorder(a.metrics))

	normalizer, err := discovery.NewNormalizer(cfg.Discovery.BaseURL)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("discovery base url: %w", err)
	}
	discoverer := discovery.NewRunner(
		database.NewContentRepository(db),
		a.links,
		discovery.DefaultAdapters(normalizer),
		discovery.NewCustomFieldExtractor(normalizer, cfg.Discovery.CustomFields),
		cfg.Discovery.PageSize,
		log.With(infralogger.Component("discovery")),
	)

	opts := []scan.Option{
		scan.WithBatchSize(cfg.Scanner.BatchSize),
		scan.WithContinuationDelay(cfg.Scanner.ContinuationDelay),
		scan.WithStartDelay(cfg.Scanner.StartDelay),
		scan.WithStaleAfter(cfg.Scanner.StaleAfter),
		scan.WithLeaseTTL(cfg.Scanner.LeaseTTL),
		scan.WithDueAfter(cfg.Scanner.DueAfter),
		scan.WithManualOnly(cfg.Scanner.ManualOnly),
		scan.WithRecheck(cfg.Recheck.Limit, cfg.Recheck.MinAge, cfg.Recheck.Delay),
		scan.WithCache(cache),
		scan.WithRecorder(a.metrics),
		scan.WithLogger(log.With(infralogger.Component("scan"))),
	}
	if publisher != nil {
		opts = append(opts, scan.WithNotifier(publisher))
	}

	a.orch = scan.NewOrchestrator(
		a.links,
		a.scans,
		a.checker,
		discoverer,
		tasks.NewPostgresScheduler(a.taskRepo),
		opts...,
	)

	return a, nil
}

// Close releases connections and flushes the logger.
func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	_ = a.db.Close()
	_ = a.logger.Sync()
}

type job struct {
	name string
	spec string
	fn   tasks.Handler
}

func (a *app) jobs() []job {
	return []job{
		{name: tasks.JobScan, spec: a.cfg.Schedule.Scan, fn: a.orch.RunScheduledScan},
		{name: tasks.JobRecheck, spec: a.cfg.Schedule.Recheck, fn: func(ctx context.Context) error {
			_, err := a.orch.RecheckBrokenLinks(ctx)
			return err
		}},
		{name: tasks.JobCleanup, spec: a.cfg.Schedule.Cleanup, fn: func(ctx context.Context) error {
			_, err := a.orch.CleanupStaleScans(ctx)
			return err
		}},
	}
}

// newCronManager registers every enabled maintenance job.
func (a *app) newCronManager() (*tasks.CronManager, error) {
	crons := tasks.NewCronManager(a.guard, a.logger.With(infralogger.Component("cron")))
	for _, j := range a.jobs() {
		if err := crons.Add(j.name, j.spec, j.fn); err != nil {
			return nil, err
		}
	}
	return crons, nil
}
