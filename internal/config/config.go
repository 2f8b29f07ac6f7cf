// Package config loads s3uri settings from defaults, an optional YAML file,
// the environment, command-line flags and runtime overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/3leaps/s3uri/pkg/match"
	"github.com/3leaps/s3uri/pkg/provider/s3"
)

// ErrInvalidConfig is returned when loaded settings fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the effective configuration for one run.
type Config struct {
	Region          string `mapstructure:"region" yaml:"region"`
	Profile         string `mapstructure:"profile" yaml:"profile"`
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint"`
	ForcePathStyle  bool   `mapstructure:"force_path_style" yaml:"force_path_style"`
	AccessKeyID     string `mapstructure:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key" yaml:"secret_access_key"`
	IMDSRegion      bool   `mapstructure:"imds_region" yaml:"imds_region"`

	Bucket      string        `mapstructure:"bucket" yaml:"bucket"`
	Prefix      string        `mapstructure:"prefix" yaml:"prefix"`
	Delimiter   string        `mapstructure:"delimiter" yaml:"delimiter"`
	MaxKeys     int           `mapstructure:"max_keys" yaml:"max_keys"`
	ListTimeout time.Duration `mapstructure:"list_timeout" yaml:"list_timeout"`

	Include []string `mapstructure:"include" yaml:"include"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	Debug   bool          `mapstructure:"debug" yaml:"debug"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig controls the CLI logger.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// Validate checks settings that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	var problems []string

	if c.Delimiter == "" {
		problems = append(problems, "delimiter must not be empty")
	}
	if c.MaxKeys < 0 || c.MaxKeys > s3.MaxAllowedKeys {
		problems = append(problems, fmt.Sprintf("max_keys must be between 0 and %d", s3.MaxAllowedKeys))
	}
	if c.ListTimeout < 0 {
		problems = append(problems, "list_timeout must not be negative")
	}
	if (c.AccessKeyID == "") != (c.SecretAccessKey == "") {
		problems = append(problems, "access_key_id and secret_access_key must be set together")
	}
	if _, err := match.New(c.MatchConfig()); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// S3Config returns the provider settings.
func (c *Config) S3Config() s3.Config {
	return s3.Config{
		Region:          c.Region,
		Endpoint:        c.Endpoint,
		Profile:         c.Profile,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
		ForcePathStyle:  c.ForcePathStyle,
		MaxKeys:         c.MaxKeys,
		UseIMDSRegion:   c.IMDSRegion,
	}
}

// MatchConfig returns the leaf filter settings.
func (c *Config) MatchConfig() match.Config {
	return match.Config{
		Includes: c.Include,
		Excludes: c.Exclude,
	}
}

// LogLevel returns the effective log level name; debug wins over
// logging.level.
func (c *Config) LogLevel() string {
	if c.Debug {
		return "debug"
	}
	if c.Logging.Level == "" {
		return "info"
	}
	return c.Logging.Level
}

// Masked returns a copy safe to print, with credentials hidden.
func (c Config) Masked() Config {
	c.AccessKeyID = MaskSecret(c.AccessKeyID)
	c.SecretAccessKey = MaskSecret(c.SecretAccessKey)
	c.Include = append([]string(nil), c.Include...)
	c.Exclude = append([]string(nil), c.Exclude...)
	return c
}

// MaskSecret keeps the last four characters of s. Empty stays empty.
func MaskSecret(s string) string {
	switch {
	case s == "":
		return ""
	case len(s) <= 4:
		return "****"
	default:
		return "****" + s[len(s)-4:]
	}
}
