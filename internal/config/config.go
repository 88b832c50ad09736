// Package config loads almanac settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name (ALMANAC_THREADS, ...).
const Prefix = "ALMANAC"

// Defaults mirrored by the struct tags below.
const (
	DefaultThreads       = 0
	DefaultCoalesceEvery = 1
	DefaultOutput        = "text"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
)

// Env holds environment-based configuration.
type Env struct {
	// Threads is the worker count for one stage (0 = all CPUs).
	// Env: ALMANAC_THREADS (default: 0)
	Threads int `envconfig:"THREADS" default:"0"`

	// CoalesceEvery merges the interval set after every N stages (0 = never).
	// Env: ALMANAC_COALESCE_EVERY (default: 1)
	CoalesceEvery int `envconfig:"COALESCE_EVERY" default:"1"`

	// Output is the answer format.
	// Env: ALMANAC_OUTPUT (default: text)
	Output string `envconfig:"OUTPUT" default:"text"`

	// LogLevel is one of debug, info, warn, error.
	// Env: ALMANAC_LOG_LEVEL (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is console or json.
	// Env: ALMANAC_LOG_FORMAT (default: console)
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
}

// LoadDotEnv loads variables from a .env file. Variables already set in the
// environment win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv reads ALMANAC_* variables.
func LoadFromEnv() (Env, error) {
	var e Env
	if err := envconfig.Process(Prefix, &e); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Load applies envFile (or ./.env when empty) and then reads the environment.
func Load(envFile string) (Env, error) {
	if err := LoadDotEnv(envFile); err != nil {
		return Env{}, err
	}
	return LoadFromEnv()
}
