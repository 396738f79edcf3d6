package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Output formats supported by the sink.
const (
	FormatCSV   = "csv"
	FormatJSONL = "jsonl"
)

// Config holds the generation parameters for one run. The four quota fields
// are upper bounds on how many injections of each kind may occur across the
// whole log, not per-case targets.
type Config struct {
	Output         string  `mapstructure:"output" yaml:"output"`
	Format         string  `mapstructure:"format" yaml:"format"`
	Instances      int     `mapstructure:"instances" yaml:"instances"`
	MaxEvents      int     `mapstructure:"max_events" yaml:"max_events"`
	SelfLoops      int     `mapstructure:"self_loops" yaml:"self_loops"`
	PingPongs      int     `mapstructure:"ping_pongs" yaml:"ping_pongs"`
	Gaps           int     `mapstructure:"gaps" yaml:"gaps"`
	Errors         int     `mapstructure:"errors" yaml:"errors"`
	IncompleteRate float64 `mapstructure:"incomplete_rate" yaml:"incomplete_rate"`
	Seed           int64   `mapstructure:"seed" yaml:"seed"`
	WithResources  bool    `mapstructure:"with_resources" yaml:"with_resources"`
}

// LoadConfig loads configuration with cascade: flags > ./caseforge.yaml >
// ~/.caseforge/config.yaml > defaults. Flag overrides are applied by the
// caller after loading.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("caseforge")
	v.SetConfigType("yaml")
	v.SetEnvPrefix("CASEFORGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".caseforge"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine, defaults apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Unmarshal of pure defaults cannot fail.
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "generated_log.csv")
	v.SetDefault("format", FormatCSV)
	v.SetDefault("instances", 10)
	v.SetDefault("max_events", 10)
	v.SetDefault("self_loops", 2)
	v.SetDefault("ping_pongs", 2)
	v.SetDefault("gaps", 2)
	v.SetDefault("errors", 2)
	v.SetDefault("incomplete_rate", 0.1)
	v.SetDefault("seed", 0)
	v.SetDefault("with_resources", false)
}

// Validate checks the configuration preconditions. Violations fail the run
// before any output is created; nothing is clamped silently.
func (c *Config) Validate() error {
	if c.Output == "" {
		return fmt.Errorf("output path is required")
	}
	if c.Format != FormatCSV && c.Format != FormatJSONL {
		return fmt.Errorf("unknown output format %q (want %q or %q)", c.Format, FormatCSV, FormatJSONL)
	}
	if c.Instances < 0 {
		return fmt.Errorf("instances must be non-negative, got %d", c.Instances)
	}
	if c.MaxEvents < 3 {
		return fmt.Errorf("max_events must be at least 3, got %d", c.MaxEvents)
	}
	if c.SelfLoops < 0 || c.PingPongs < 0 || c.Gaps < 0 || c.Errors < 0 {
		return fmt.Errorf("injection quotas must be non-negative")
	}
	if c.IncompleteRate < 0 || c.IncompleteRate > 1 {
		return fmt.Errorf("incomplete_rate must be in [0,1], got %g", c.IncompleteRate)
	}
	return nil
}
