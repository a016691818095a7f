// Package config handles the pubtl global configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/pubtl/config.yml.
type GlobalConfig struct {
	Researcher  string  `yaml:"researcher,omitempty"`
	RankingsDir string  `yaml:"rankings_dir,omitempty"`
	RankingsDB  string  `yaml:"rankings_db,omitempty"`
	Editions    []int   `yaml:"editions,omitempty" validate:"dive,gte=1990,lte=2100"`
	DBLPURL     string  `yaml:"dblp_url,omitempty" validate:"omitempty,url"`
	DBLPRate    float64 `yaml:"dblp_rate,omitempty" validate:"gte=0,lte=50"`
	LogLevel    string  `yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error disabled"`
	LogFormat   string  `yaml:"log_format,omitempty" validate:"omitempty,oneof=console json"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "pubtl"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PUBTL_"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

var validate = validator.New(validator.WithRequiredStructEnabled())

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/pubtl/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file, applies environment
// overrides and defaults, and validates the result.
// A missing file is not an error.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}
	cfg, err := Load(GlobalConfigPath())
	if err != nil {
		return nil, err
	}
	globalConfigCache = cfg
	return cfg, nil
}

// Load reads the configuration at path. An empty path or a missing file
// yields the defaults (plus environment overrides).
func Load(path string) (*GlobalConfig, error) {
	var cfg GlobalConfig

	if path != "" {
		data, err := os.ReadFile(ExpandPath(path))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// ApplyEnv overrides fields from PUBTL_* environment variables.
func (c *GlobalConfig) ApplyEnv() error {
	c.Researcher = GetConfigValue(envKey("researcher"), c.Researcher)
	c.RankingsDir = GetConfigValue(envKey("rankings_dir"), c.RankingsDir)
	c.RankingsDB = GetConfigValue(envKey("rankings_db"), c.RankingsDB)
	c.DBLPURL = GetConfigValue(envKey("dblp_url"), c.DBLPURL)
	c.LogLevel = GetConfigValue(envKey("log_level"), c.LogLevel)
	c.LogFormat = GetConfigValue(envKey("log_format"), c.LogFormat)

	if v := os.Getenv(envKey("dblp_rate")); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, envKey("dblp_rate"), v)
		}
		c.DBLPRate = rate
	}
	if v := os.Getenv(envKey("editions")); v != "" {
		editions, err := ParseEditions(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, envKey("editions"), err)
		}
		c.Editions = editions
	}
	return nil
}

// ApplyDefaults fills unset fields.
func (c *GlobalConfig) ApplyDefaults() {
	if c.RankingsDir == "" {
		c.RankingsDir = DefaultRankingsDir()
	}
	if c.RankingsDB == "" {
		c.RankingsDB = DefaultRankingsDB()
	}
	c.RankingsDir = ExpandPath(c.RankingsDir)
	c.RankingsDB = ExpandPath(c.RankingsDB)
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}

// Validate checks field constraints.
func (c *GlobalConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s fails %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// ParseEditions parses a comma-separated list of edition years.
func ParseEditions(s string) ([]int, error) {
	var years []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		y, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid edition year %q", part)
		}
		years = append(years, y)
	}
	return years, nil
}

// GetConfigValue returns the environment variable if set, else fallback.
func GetConfigValue(envVar, fallback string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	return fallback
}

func envKey(field string) string {
	return EnvPrefix + toUpperSnake(field)
}

// toUpperSnake converts a config key to an environment variable suffix.
func toUpperSnake(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "-", "_"))
}

// HelpfulConfigMessage explains how to set up the global config.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No researcher configured.

Pass --researcher, set %sRESEARCHER, or create %s:
  mkdir -p %s
  echo 'researcher: Jane Doe' > %s`,
		EnvPrefix,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
