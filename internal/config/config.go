package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v8"

	"despesas/internal/log"
)

type Config struct {
	// Backend selection
	DataBackend string `env:"DATA_BACKEND" envDefault:"memory"`

	// Export
	ExportPath   string `env:"EXPORT_PATH" envDefault:"relatorio_despesas.csv"`
	ExportFormat string `env:"EXPORT_FORMAT" envDefault:"csv"`

	// AMQP, disabled when the URL is empty
	AMQP AMQP

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

type AMQP struct {
	URL        string `env:"AMQP_URL"`
	Exchange   string `env:"AMQP_EXCHANGE" envDefault:"despesas"`
	RoutingKey string `env:"AMQP_ROUTING_KEY" envDefault:"expense.recorded"`
	QueueSize  int    `env:"AMQP_QUEUE_SIZE" envDefault:"64"`
}

var (
	validBackends = []string{"memory", "sqlite"}
	validFormats  = []string{"csv", "xlsx", "pdf"}
)

// Load reads the configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if !slices.Contains(validBackends, c.DataBackend) {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if !slices.Contains(validFormats, c.ExportFormat) {
		errors = append(errors, fmt.Sprintf("invalid export format '%s': must be one of %v", c.ExportFormat, validFormats))
	}

	if strings.TrimSpace(c.ExportPath) == "" {
		errors = append(errors, "export path cannot be empty")
	} else if ext := strings.TrimPrefix(filepath.Ext(c.ExportPath), "."); ext != "" && slices.Contains(validFormats, ext) && ext != c.ExportFormat {
		errors = append(errors, fmt.Sprintf("export path '%s' does not match export format '%s'", c.ExportPath, c.ExportFormat))
	}

	// Validate AMQP only when enabled
	if c.AMQP.URL != "" {
		if parsedURL, err := url.Parse(c.AMQP.URL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQP.URL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQP.Exchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQP.RoutingKey == "" {
			errors = append(errors, "AMQP routing key cannot be empty when AMQP URL is provided")
		}
		if c.AMQP.QueueSize < 1 || c.AMQP.QueueSize > 10000 {
			errors = append(errors, fmt.Sprintf("invalid AMQP queue size %d: must be between 1 and 10000", c.AMQP.QueueSize))
		}
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, err.Error())
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// AMQPEnabled reports whether recorded expenses should be published.
func (c *Config) AMQPEnabled() bool {
	return c.AMQP.URL != ""
}

// LoggerConfig turns the logging settings into a log.Config.
func (c *Config) LoggerConfig() log.Config {
	lc := log.DefaultConfig()
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		lc.Level = level
	}
	lc.Format = c.LogFormat
	return lc
}
