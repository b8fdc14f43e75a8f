package flow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/flow/internal/meta"
	"github.com/viant/flow/policy"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the engine configuration. The
// zero value is usable; DefaultConfig documents the defaults.
type Config struct {
	Flow     FlowConfig     `json:"flow" yaml:"flow"`
	Progress ProgressConfig `json:"progress" yaml:"progress"`
	Tracing  TracingConfig  `json:"tracing" yaml:"tracing"`
	Policy   *policy.Config `json:"policy,omitempty" yaml:"policy,omitempty"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Events   EventsConfig   `json:"events" yaml:"events"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}

// FlowConfig holds defaults applied to every execution.
type FlowConfig struct {
	// Timeout bounds each flow; zero disables it.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// Period is the Whilst pause used when the caller passes none.
	Period time.Duration `json:"period" yaml:"period"`
}

// ProgressConfig controls access to the service indicator, which is owned by
// one flow at a time.
type ProgressConfig struct {
	// Wait queues flows for the indicator instead of failing with progress.ErrBusy.
	Wait bool `json:"wait" yaml:"wait"`
}

// TracingConfig enables OpenTelemetry spans for flows and tasks.
type TracingConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Service string `json:"service" yaml:"service"`
	Version string `json:"version" yaml:"version"`
	Output  string `json:"output" yaml:"output"`
}

// LogConfig builds the zap logger used by the service.
type LogConfig struct {
	// Level is a zap level name; empty disables logging.
	Level       string `json:"level" yaml:"level"`
	Development bool   `json:"development" yaml:"development"`
}

// EventsConfig controls the in-memory lifecycle event queue.
type EventsConfig struct {
	Enabled      bool `json:"enabled" yaml:"enabled"`
	Buffer       int  `json:"buffer" yaml:"buffer"`
	DropWhenFull bool `json:"dropWhenFull" yaml:"dropWhenFull"`
}

// HistoryConfig controls the in-memory execution history.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// Limit caps the number of kept records; zero keeps all.
	Limit int `json:"limit" yaml:"limit"`
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() *Config {
	return &Config{
		Tracing: TracingConfig{Service: "flow", Version: "0.1.0"},
		Events:  EventsConfig{Buffer: 100, DropWhenFull: true},
		History: HistoryConfig{Enabled: true, Limit: 1000},
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Flow.Timeout < 0 {
		errs = append(errs, fmt.Errorf("flow.timeout must be >= 0"))
	}
	if c.Flow.Period < 0 {
		errs = append(errs, fmt.Errorf("flow.period must be >= 0"))
	}
	if c.Tracing.Enabled && c.Tracing.Service == "" {
		errs = append(errs, fmt.Errorf("tracing.service is required when tracing is enabled"))
	}
	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	if c.Events.Enabled && c.Events.Buffer <= 0 {
		errs = append(errs, fmt.Errorf("events.buffer must be > 0"))
	}
	if c.History.Limit < 0 {
		errs = append(errs, fmt.Errorf("history.limit must be >= 0"))
	}
	if c.Policy != nil {
		if err := c.Policy.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("policy: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Logger builds the zap logger described by c.
func (c *LogConfig) Logger() (*zap.Logger, error) {
	if c.Level == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	if c.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

// LoadConfig reads a YAML configuration from any afs supported URL, starting
// from DefaultConfig. ${env.KEY} references are replaced with environment
// values before decoding.
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	cfg := DefaultConfig()
	if err = yaml.Unmarshal([]byte(meta.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config from %s: %w", URL, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return cfg, nil
}
