package logger

// Output formats understood by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config configures the zap logger.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level  string
	Format string
	// Development disables sampling so every batch and probe is logged.
	Development bool
	// OutputPaths lists zap sinks; stdout when empty.
	OutputPaths []string
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	if len(c.OutputPaths) == 0 {
		c.OutputPaths = []string{"stdout"}
	}
}
