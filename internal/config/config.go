// Package config resolves defaults for the tagging command from a YAML file,
// the environment and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read from the working directory when no file is given.
const DefaultFile = ".tagging.yml"

// Environment variables overriding the config file.
const (
	EnvBranch      = "TAGGING_BRANCH"
	EnvVersionType = "TAGGING_VERSION_TYPE"
	EnvMessage     = "TAGGING_MESSAGE"
	EnvStrict      = "TAGGING_STRICT"
	EnvLogLevel    = "TAGGING_LOG_LEVEL"
)

// Config holds the defaults used for flags that were not set explicitly.
type Config struct {
	Branch      string `yaml:"branch"`
	VersionType string `yaml:"version_type"`
	Message     string `yaml:"message"`
	Strict      bool   `yaml:"strict"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Branch:      "master",
		VersionType: "patch",
	}
}

// LoadDotEnv loads the given .env files (".env" when none are given) into the
// process environment. Missing files are skipped and variables that are
// already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load reads path on top of Default and then applies the environment. An
// empty path means DefaultFile, which may be absent; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		file = DefaultFile
	}
	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", file, err)
		}
	case os.IsNotExist(err) && path == "":
	default:
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBranch); ok && v != "" {
		c.Branch = v
	}
	if v, ok := lookup(EnvVersionType); ok && v != "" {
		c.VersionType = v
	}
	if v, ok := lookup(EnvMessage); ok {
		c.Message = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvStrict); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvStrict, v, err)
		}
		c.Strict = strict
	}
	return nil
}
