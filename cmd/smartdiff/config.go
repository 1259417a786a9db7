package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/qri-io/smartdiff"
)

// Config holds CLI settings, merged from flags, SMARTDIFF_* environment
// variables and an optional .smartdiff.yaml file, in that order of precedence
type Config struct {
	PreferredKeys []string `mapstructure:"preferred_keys"`
	MaxDepth      int      `mapstructure:"max_depth"`
	Color         string   `mapstructure:"color"`
	Format        string   `mapstructure:"format"`
	LogLevel      string   `mapstructure:"log_level"`
	AllowYAML     bool     `mapstructure:"allow_yaml"`
	NoJoinKeys    bool     `mapstructure:"no_join_keys"`
	Stats         bool     `mapstructure:"stats"`
}

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"

	formatPretty = "pretty"
	formatJSON   = "json"
	formatLines  = "lines"
)

// flag name for each config key
var configFlags = map[string]string{
	"preferred_keys": "preferred-keys",
	"max_depth":      "max-depth",
	"color":          "color",
	"format":         "format",
	"log_level":      "log-level",
	"allow_yaml":     "allow-yaml",
	"no_join_keys":   "no-join-keys",
	"stats":          "stats",
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() *Config {
	return &Config{
		PreferredKeys: append([]string(nil), smartdiff.DefaultPreferredKeys...),
		Color:         colorAuto,
		Format:        formatPretty,
		LogLevel:      "warn",
	}
}

// LoadConfig resolves configuration for cmd. path names an explicit config
// file. when path is empty .smartdiff.yaml is looked up in the working
// directory & silently skipped if absent
func LoadConfig(cmd *cobra.Command, path string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("preferred_keys", def.PreferredKeys)
	v.SetDefault("max_depth", def.MaxDepth)
	v.SetDefault("color", def.Color)
	v.SetDefault("format", def.Format)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("allow_yaml", def.AllowYAML)
	v.SetDefault("no_join_keys", def.NoJoinKeys)
	v.SetDefault("stats", def.Stats)

	v.SetEnvPrefix("SMARTDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, name := range configFlags {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".smartdiff")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings hold known values
func (c *Config) Validate() error {
	switch c.Color {
	case colorAuto, colorAlways, colorNever:
	default:
		return fmt.Errorf("invalid color %q: must be one of auto, always, never", c.Color)
	}
	switch c.Format {
	case formatPretty, formatJSON, formatLines:
	default:
		return fmt.Errorf("invalid format %q: must be one of pretty, json, lines", c.Format)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth %d: must not be negative", c.MaxDepth)
	}
	if _, err := levelFromString(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// DiffOptions translates configuration to differ options
func (c *Config) DiffOptions() []smartdiff.DiffOption {
	opts := []smartdiff.DiffOption{smartdiff.OptionMaxDepth(c.MaxDepth)}
	if len(c.PreferredKeys) > 0 {
		opts = append(opts, smartdiff.OptionPreferredKeys(c.PreferredKeys...))
	}
	if c.NoJoinKeys {
		opts = append(opts, smartdiff.OptionDisableJoinKeys())
	}
	return opts
}
