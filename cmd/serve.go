package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	infraredis "github.com/jonesrussell/north-cloud/link-checker/infrastructure/redis"
	"github.com/jonesrussell/north-cloud/link-checker/internal/api"
	"github.com/jonesrussell/north-cloud/link-checker/internal/database"
	"github.com/jonesrussell/north-cloud/link-checker/internal/tasks"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, task runner and maintenance scheduler",
		Long: `Serve runs the HTTP API together with the task runner that processes scan
batches and the cron manager for scheduled scans, rechecks and stale cleanup.
It stops on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	log := a.logger

	runner := tasks.NewRunner(a.taskRepo,
		tasks.WithPollInterval(a.cfg.Tasks.PollInterval),
		tasks.WithClaimTTL(a.cfg.Tasks.ClaimTTL),
		tasks.WithClaimBatch(a.cfg.Tasks.ClaimBatch),
		tasks.WithRecorder(a.metrics),
		tasks.WithLogger(log.With(infralogger.Component("tasks"))),
	)
	a.orch.RegisterTasks(runner)

	crons, err := a.newCronManager()
	if err != nil {
		return fmt.Errorf("schedule maintenance: %w", err)
	}
	crons.Start(ctx)
	defer crons.Stop()

	runnerDone := make(chan struct{})
	go func() {
		defer close(runnerDone)
		_ = runner.Run(ctx)
	}()

	server := api.NewServer(a.cfg, api.ServerDeps{
		Handler:      api.NewHandler(a.orch, a.links, a.checker, crons, log),
		Metrics:      a.metrics,
		DatabasePing: a.pingDatabase,
		RedisPing:    a.pingRedis(),
	}, log)

	log.Info("Link checker starting",
		infralogger.Int("port", a.cfg.Service.Port),
		infralogger.Strings("jobs", crons.Jobs()),
		infralogger.Bool("redis", a.redis != nil),
	)

	serveErr := server.Run(ctx)

	// The server can return on its own error; make sure the runner stops too.
	stop()
	<-runnerDone

	if serveErr != nil {
		return fmt.Errorf("http server: %w", serveErr)
	}

	log.Info("Link checker exited cleanly")
	return nil
}

func (a *app) pingDatabase() error {
	ctx, cancel := context.WithTimeout(context.Background(), database.DefaultPingTimeout)
	defer cancel()
	return a.db.PingContext(ctx)
}

// pingRedis is nil when Redis is not in use, which skips the health check.
func (a *app) pingRedis() func() error {
	if a.redis == nil {
		return nil
	}
	return infraredis.Pinger(a.redis, infraredis.DefaultPingTimeout)
}
