package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dshills/ropekit/internal/engine/rope"
)

// configName is the config file name without extension.
const configName = ".ropekit"

// configType is the config file format.
const configType = "toml"

// envPrefix is the environment variable prefix for ropekit settings.
const envPrefix = "ROPEKIT"

// Default values.
const (
	DefaultLogLevel       = "info"
	DefaultOutputFormat   = "json"
	DefaultRebalanceEvery = 0
	DefaultEditLogLimit   = 1000
	DefaultScriptTimeout  = 5 * time.Second
)

// Config holds all ropekit settings.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Build    BuildConfig    `mapstructure:"build"`
	Document DocumentConfig `mapstructure:"document"`
	Output   OutputConfig   `mapstructure:"output"`
	Script   ScriptConfig   `mapstructure:"script"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// JSON enables JSON-formatted log output.
	JSON bool `mapstructure:"json"`
}

// BuildConfig controls construction of ropes from plain text.
type BuildConfig struct {
	// ChunkSize is the maximum characters per leaf.
	ChunkSize int `mapstructure:"chunk_size"`
}

// DocumentConfig controls edit sessions.
type DocumentConfig struct {
	// RebalanceEvery rebalances after this many edits; 0 disables.
	RebalanceEvery int `mapstructure:"rebalance_every"`
	// FullBalance rebuilds the whole tree instead of a rotation pass.
	FullBalance bool `mapstructure:"full_balance"`
	// EditLogLimit caps the number of edits a document remembers.
	EditLogLimit int `mapstructure:"edit_log_limit"`
}

// OutputConfig controls structured output.
type OutputConfig struct {
	// Format is one of json, yaml, toml.
	Format string `mapstructure:"format"`
}

// ScriptConfig controls Lua edit scripts.
type ScriptConfig struct {
	// Timeout bounds a single script run; 0 disables.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: DefaultLogLevel},
		Build:    BuildConfig{ChunkSize: rope.DefaultChunkSize},
		Document: DocumentConfig{RebalanceEvery: DefaultRebalanceEvery, EditLogLimit: DefaultEditLogLimit},
		Output:   OutputConfig{Format: DefaultOutputFormat},
		Script:   ScriptConfig{Timeout: DefaultScriptTimeout},
	}
}

// Load loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("build.chunk_size", d.Build.ChunkSize)
	v.SetDefault("document.rebalance_every", d.Document.RebalanceEvery)
	v.SetDefault("document.full_balance", d.Document.FullBalance)
	v.SetDefault("document.edit_log_limit", d.Document.EditLogLimit)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("script.timeout", d.Script.Timeout)
}

// Validate checks every setting and returns the first failure.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Path: "log.level", Message: "must be debug, info, warn or error", Value: c.Log.Level}
	}

	if c.Build.ChunkSize < rope.MinChunkSize {
		return &ValidationError{
			Path:    "build.chunk_size",
			Message: fmt.Sprintf("must be at least %d", rope.MinChunkSize),
			Value:   c.Build.ChunkSize,
		}
	}

	if c.Document.RebalanceEvery < 0 {
		return &ValidationError{Path: "document.rebalance_every", Message: "must not be negative", Value: c.Document.RebalanceEvery}
	}

	if c.Document.EditLogLimit < 1 {
		return &ValidationError{Path: "document.edit_log_limit", Message: "must be at least 1", Value: c.Document.EditLogLimit}
	}

	switch c.Output.Format {
	case "json", "yaml", "toml":
	default:
		return &ValidationError{Path: "output.format", Message: "must be json, yaml or toml", Value: c.Output.Format}
	}

	if c.Script.Timeout < 0 {
		return &ValidationError{Path: "script.timeout", Message: "must not be negative", Value: c.Script.Timeout}
	}

	return nil
}
