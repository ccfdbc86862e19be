// Command migrate applies the link checker's schema migrations.
//
//	migrate up          apply every pending migration
//	migrate down        roll back every migration
//	migrate steps N     apply N migrations, or roll back when N is negative
//	migrate version     print the applied version
//
// MIGRATIONS_PATH overrides the default file://migrations source.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	infraconfig "github.com/jonesrussell/north-cloud/link-checker/infrastructure/config"
	"github.com/jonesrussell/north-cloud/link-checker/internal/config"
)

const defaultSource = "file://migrations"

const usage = "usage: migrate up | down | steps N | version"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	action, err := parseAction(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(infraconfig.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	source := defaultSource
	if p := os.Getenv("MIGRATIONS_PATH"); p != "" {
		source = p
	}

	m, err := migrate.New(source, cfg.Database.MigrateURL())
	if err != nil {
		return fmt.Errorf("open %s: %w", source, err)
	}
	defer func() { _, _ = m.Close() }()

	return action(m)
}

type action func(*migrate.Migrate) error

func parseAction(args []string) (action, error) {
	switch args[0] {
	case "up":
		return apply("up", (*migrate.Migrate).Up), nil
	case "down":
		return apply("down", (*migrate.Migrate).Down), nil
	case "steps":
		if len(args) < 2 {
			return nil, errors.New(usage)
		}
		n, err := strconv.Atoi(args[1])
		if err != nil || n == 0 {
			return nil, fmt.Errorf("steps: %q is not a non-zero integer", args[1])
		}
		return apply("steps "+args[1], func(m *migrate.Migrate) error { return m.Steps(n) }), nil
	case "version":
		return printVersion, nil
	default:
		return nil, fmt.Errorf("unknown command %q; %s", args[0], usage)
	}
}

func apply(name string, fn func(*migrate.Migrate) error) action {
	return func(m *migrate.Migrate) error {
		err := fn(m)
		switch {
		case errors.Is(err, migrate.ErrNoChange):
			fmt.Println("Nothing to migrate")
			return nil
		case err != nil:
			return fmt.Errorf("%s: %w", name, err)
		}
		fmt.Printf("Migrated %s\n", name)
		return printVersion(m)
	}
}

func printVersion(m *migrate.Migrate) error {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Println("Schema version: none")
		return nil
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	}

	if dirty {
		fmt.Printf("Schema version: %d (dirty, fix and force before migrating again)\n", version)
		return nil
	}
	fmt.Printf("Schema version: %d\n", version)
	return nil
}
