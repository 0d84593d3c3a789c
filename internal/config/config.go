// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//  3. Neither: environment variables and env-default values only, so the
//     program runs out of the box with ./student_data.json.
//
// Values from the YAML file can always be overridden by the env:"..."
// variable of the same field.
package config

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers understood by main.go.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"prod" validate:"oneof=dev staging prod"`

	// StoragePath is the data file: a JSON document for the json driver,
	// a SQLite .db file for the sqlite driver.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"student_data.json" validate:"required"`

	// StorageDriver selects the persistence backend.
	StorageDriver string `yaml:"storage_driver" env:"STORAGE_DRIVER" env-default:"json" validate:"oneof=json sqlite"`

	// LogFile receives the structured log. Empty means stderr, which keeps
	// log lines out of the menu on stdout.
	LogFile string `yaml:"log_file" env:"LOG_FILE"`

	// Shell is embedded (not a pointer) so its fields are promoted:
	// cfg.Shell.SaveOnExit or cfg.SaveOnExit.
	Shell `yaml:"shell"`
}

// Shell holds settings for the interactive menu.
// Nested under shell: in the YAML file.
type Shell struct {
	// SaveOnExit saves the registry when the user picks 0 or input ends.
	SaveOnExit bool `yaml:"save_on_exit" env:"SHELL_SAVE_ON_EXIT" env-default:"false"`
}

// Load reads the config from path, or from the environment alone when
// path is empty, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read env: %w", err)
		}
	} else {
		// Verify the file exists before trying to read it so the message
		// is clear rather than a cryptic "open: no such file" later.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: invalid config: %w", err)
	}
	return &cfg, nil
}

// MustLoad reads, validates, and returns the application config.
//
// Functions prefixed with "Must" are allowed to exit on failure: if this
// returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}
	return cfg
}
