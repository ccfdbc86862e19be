package config

import (
	"net/url"
	"time"

	infraconfig "github.com/jonesrussell/north-cloud/link-checker/infrastructure/config"
	infraredis "github.com/jonesrussell/north-cloud/link-checker/infrastructure/redis"
	"github.com/jonesrussell/north-cloud/link-checker/internal/checker"
)

// Default configuration values.
const (
	defaultServiceName = "link-checker"
	defaultServicePort = 8094
	defaultVersion     = "0.1.0"
	defaultDBName      = "link_checker"
	defaultDBUser      = "postgres"
	defaultRedisAddr   = "localhost:6379"

	defaultBatchSize         = 3
	minBatchSize             = 1
	maxBatchSize             = 10
	defaultContinuationDelay = 2 * time.Second
	defaultStartDelay        = time.Second
	defaultStaleAfter        = 30 * time.Minute
	defaultLeaseTTL          = time.Hour
	defaultDueAfter          = 24 * time.Hour

	defaultRecheckLimit  = 50
	defaultRecheckMinAge = 6 * time.Hour
	defaultRecheckDelay  = 500 * time.Millisecond

	defaultScanCron    = "0 3 * * *"
	defaultRecheckCron = "0 * * * *"
	defaultCleanupCron = "*/5 * * * *"

	defaultPollInterval = time.Second
	defaultClaimTTL     = 5 * time.Minute
	defaultClaimBatch   = 10

	defaultPageSize = 100
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig              `yaml:"service"`
	Database  infraconfig.DatabaseConfig `yaml:"database"`
	Redis     infraredis.Config          `yaml:"redis"`
	Checker   checker.Config             `yaml:"checker"`
	Scanner   ScannerConfig              `yaml:"scanner"`
	Recheck   RecheckConfig              `yaml:"recheck"`
	Schedule  ScheduleConfig             `yaml:"schedule"`
	Tasks     TasksConfig                `yaml:"tasks"`
	Discovery DiscoveryConfig            `yaml:"discovery"`
	Logging   infraconfig.LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Port        int      `env:"LINK_CHECKER_PORT"         yaml:"port"`
	Debug       bool     `env:"APP_DEBUG"                 yaml:"debug"`
	CORSOrigins []string `env:"LINK_CHECKER_CORS_ORIGINS" yaml:"cors_origins"`
}

// ScannerConfig controls the scan state machine.
type ScannerConfig struct {
	// BatchSize is the number of links checked per invocation, clamped to [1,10].
	BatchSize         int           `env:"LINK_CHECKER_BATCH_SIZE" yaml:"batch_size"`
	ContinuationDelay time.Duration `yaml:"continuation_delay"`
	StartDelay        time.Duration `yaml:"start_delay"`
	StaleAfter        time.Duration `yaml:"stale_after"`
	LeaseTTL          time.Duration `yaml:"lease_ttl"`
	// DueAfter is how long a check result stays fresh.
	DueAfter   time.Duration `yaml:"due_after"`
	ManualOnly bool          `env:"LINK_CHECKER_MANUAL_ONLY" yaml:"manual_only"`
}

// RecheckConfig controls the periodic re-probe of broken and warning links.
type RecheckConfig struct {
	Limit  int           `yaml:"limit"`
	MinAge time.Duration `yaml:"min_age"`
	Delay  time.Duration `yaml:"delay"`
}

// ScheduleConfig holds cron specs. The value "off" disables a job.
type ScheduleConfig struct {
	Scan    string `env:"LINK_CHECKER_SCAN_CRON" yaml:"scan"`
	Recheck string `yaml:"recheck"`
	Cleanup string `yaml:"cleanup"`
}

// TasksConfig controls the deferred task runner.
type TasksConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	ClaimTTL     time.Duration `yaml:"claim_ttl"`
	ClaimBatch   int           `yaml:"claim_batch"`
}

// DiscoveryConfig controls link discovery over the content corpus.
type DiscoveryConfig struct {
	// BaseURL resolves relative links and separates internal from external.
	BaseURL      string   `env:"LINK_CHECKER_BASE_URL" yaml:"base_url"`
	CustomFields []string `yaml:"custom_fields"`
	PageSize     int      `yaml:"page_size"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.Load(path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRedisDefaults(&cfg.Redis)
	cfg.Checker.SetDefaults()
	setScannerDefaults(&cfg.Scanner)
	setRecheckDefaults(&cfg.Recheck)
	setScheduleDefaults(&cfg.Schedule)
	setTasksDefaults(&cfg.Tasks)
	setDiscoveryDefaults(&cfg.Discovery)
	cfg.Logging.SetDefaults()
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

func setDatabaseDefaults(db *infraconfig.DatabaseConfig) {
	db.SetDefaults()
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
}

func setRedisDefaults(r *infraredis.Config) {
	if r.Address == "" {
		r.Address = defaultRedisAddr
	}
}

func setScannerDefaults(s *ScannerConfig) {
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
	s.BatchSize = ClampBatchSize(s.BatchSize)
	if s.ContinuationDelay == 0 {
		s.ContinuationDelay = defaultContinuationDelay
	}
	if s.StartDelay == 0 {
		s.StartDelay = defaultStartDelay
	}
	if s.StaleAfter == 0 {
		s.StaleAfter = defaultStaleAfter
	}
	if s.LeaseTTL == 0 {
		s.LeaseTTL = defaultLeaseTTL
	}
	if s.DueAfter == 0 {
		s.DueAfter = defaultDueAfter
	}
}

func setRecheckDefaults(r *RecheckConfig) {
	if r.Limit == 0 {
		r.Limit = defaultRecheckLimit
	}
	if r.MinAge == 0 {
		r.MinAge = defaultRecheckMinAge
	}
	if r.Delay == 0 {
		r.Delay = defaultRecheckDelay
	}
}

func setScheduleDefaults(s *ScheduleConfig) {
	if s.Scan == "" {
		s.Scan = defaultScanCron
	}
	if s.Recheck == "" {
		s.Recheck = defaultRecheckCron
	}
	if s.Cleanup == "" {
		s.Cleanup = defaultCleanupCron
	}
}

func setTasksDefaults(t *TasksConfig) {
	if t.PollInterval == 0 {
		t.PollInterval = defaultPollInterval
	}
	if t.ClaimTTL == 0 {
		t.ClaimTTL = defaultClaimTTL
	}
	if t.ClaimBatch == 0 {
		t.ClaimBatch = defaultClaimBatch
	}
}

func setDiscoveryDefaults(d *DiscoveryConfig) {
	if d.PageSize == 0 {
		d.PageSize = defaultPageSize
	}
}

// ClampBatchSize bounds n to the supported batch range.
func ClampBatchSize(n int) int {
	return max(minBatchSize, min(n, maxBatchSize))
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := infraconfig.ValidateRange("scanner.batch_size", c.Scanner.BatchSize, minBatchSize, maxBatchSize); err != nil {
		return err
	}

	durations := []struct {
		field string
		value time.Duration
	}{
		{"checker.timeout", c.Checker.Timeout},
		{"scanner.continuation_delay", c.Scanner.ContinuationDelay},
		{"scanner.stale_after", c.Scanner.StaleAfter},
		{"scanner.lease_ttl", c.Scanner.LeaseTTL},
		{"tasks.poll_interval", c.Tasks.PollInterval},
		{"tasks.claim_ttl", c.Tasks.ClaimTTL},
	}
	for _, d := range durations {
		if err := infraconfig.ValidatePositiveDuration(d.field, d.value); err != nil {
			return err
		}
	}

	if c.Recheck.Delay < 0 {
		return &infraconfig.ValidationError{Field: "recheck.delay", Message: "must not be negative"}
	}

	return validateBaseURL(c.Discovery.BaseURL)
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return &infraconfig.ValidationError{Field: "discovery.base_url", Message: "is required"}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &infraconfig.ValidationError{Field: "discovery.base_url", Message: "must be an absolute http(s) URL"}
	}
	return nil
}
