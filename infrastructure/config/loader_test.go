package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/link-checker/infrastructure/config"
)

type sampleConfig struct {
	Name    string        `env:"SAMPLE_NAME"    yaml:"name"`
	Port    int           `env:"SAMPLE_PORT"    yaml:"port"`
	Timeout time.Duration `env:"SAMPLE_TIMEOUT" yaml:"timeout"`
	Verify  bool          `env:"SAMPLE_VERIFY"  yaml:"verify"`
	Fields  []string      `env:"SAMPLE_FIELDS"  yaml:"fields"`
	Region  string        `env:"SAMPLE_REGION"  yaml:"region"`
	Nested  struct {
		Level string `env:"SAMPLE_LEVEL" yaml:"level"`
	} `yaml:"nested"`
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := writeYAML(t, "name: link-checker\nport: 8094\ntimeout: 30s\nnested:\n  level: debug\n")

	cfg, err := config.Load[sampleConfig](path, nil)
	require.NoError(t, err)

	assert.Equal(t, "link-checker", cfg.Name)
	assert.Equal(t, 8094, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Nested.Level)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeYAML(t, "name: from-file\nport: 1\n")
	t.Setenv("SAMPLE_NAME", "from-env")
	t.Setenv("SAMPLE_PORT", "9000")
	t.Setenv("SAMPLE_TIMEOUT", "1500ms")
	t.Setenv("SAMPLE_VERIFY", "yes")
	t.Setenv("SAMPLE_FIELDS", "website, download_url")
	t.Setenv("SAMPLE_LEVEL", "warn")

	cfg, err := config.Load[sampleConfig](path, nil)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.Verify)
	assert.Equal(t, []string{"website", "download_url"}, cfg.Fields)
	assert.Equal(t, "warn", cfg.Nested.Level)
}

func TestLoad_MissingFileUsesZeroValue(t *testing.T) {
	cfg, err := config.Load[sampleConfig](filepath.Join(t.TempDir(), "absent.yml"), nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Name)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, "name: [unterminated\n")

	_, err := config.Load[sampleConfig](path, nil)
	require.Error(t, err)
}

func TestLoad_EnvBeatsDefaults(t *testing.T) {
	path := writeYAML(t, "")
	t.Setenv("SAMPLE_PORT", "7000")

	cfg, err := config.Load(path, func(c *sampleConfig) {
		if c.Name == "" {
			c.Name = "default-name"
		}
		c.Port = 1234
	})
	require.NoError(t, err)

	assert.Equal(t, "default-name", cfg.Name)
	assert.Equal(t, 7000, cfg.Port)
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	path := writeYAML(t, "")
	t.Setenv("SAMPLE_TIMEOUT", "soon")

	_, err := config.Load[sampleConfig](path, nil)

	var verr *config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "SAMPLE_TIMEOUT", verr.Field)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte("SAMPLE_REGION=ca-central\n"), 0o600))
	t.Setenv("ENV_FILE", envPath)
	// register the restore, then unset so godotenv may set it
	t.Setenv("SAMPLE_REGION", "")
	require.NoError(t, os.Unsetenv("SAMPLE_REGION"))

	cfg, err := config.Load[sampleConfig](writeYAML(t, "region: from-file\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "ca-central", cfg.Region)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, "config.yml", config.GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/link-checker/config.yml")
	assert.Equal(t, "/etc/link-checker/config.yml", config.GetConfigPath("config.yml"))
}

func TestValidationHelpers(t *testing.T) {
	t.Parallel()

	assert.NoError(t, config.ValidatePort("service.port", 8094))
	assert.EqualError(t, config.ValidatePort("service.port", 0), "service.port: must be between 1 and 65535")
	assert.EqualError(t, config.ValidateRange("scanner.batch_size", 11, 1, 10),
		"scanner.batch_size: must be between 1 and 10")
	assert.Error(t, config.ValidatePositiveDuration("checker.timeout", 0))
	assert.NoError(t, config.ValidateLogLevel("warning"))
	assert.Error(t, config.ValidateLogFormat("xml"))
}
