// Package config provides functionality for managing configuration options
// for the application using command-line flags, a config file and
// environment variables.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAccountKey is the preference key holding the stringified default account.
const DefaultAccountKey = "contact_editor_default_account_key"

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// Config is the path to the Config file.
	Config string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// DefaultAccountKey is the preference key read by the resolver.
	DefaultAccountKey string

	// TLSCert and TLSKey enable HTTPS when both are set.
	TLSCert string
	TLSKey  string

	// CleanupInterval and RemovedRetention control purging of removed accounts.
	CleanupInterval  time.Duration
	RemovedRetention time.Duration
}

// fileConfig mirrors Options in a config file. Durations are strings such as "1h".
type fileConfig struct {
	Port              string `json:"port" yaml:"port"`
	DatabaseDSN       string `json:"database_dsn" yaml:"database_dsn"`
	LogLevel          string `json:"log_level" yaml:"log_level"`
	DefaultAccountKey string `json:"default_account_key" yaml:"default_account_key"`
	TLSCert           string `json:"tls_cert" yaml:"tls_cert"`
	TLSKey            string `json:"tls_key" yaml:"tls_key"`
	CleanupInterval   string `json:"cleanup_interval" yaml:"cleanup_interval"`
	RemovedRetention  string `json:"removed_retention" yaml:"removed_retention"`
}

// Parse parses the process arguments and environment. It exits the process
// on invalid configuration.
func Parse() *Options {
	options, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return options
}

// Load builds Options from args, then the config file, then environment
// variables, each layer overriding the previous one.
func Load(args []string) (*Options, error) {
	options := &Options{}

	fs := flag.NewFlagSet("contactkeeper", flag.ContinueOnError)
	fs.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	fs.StringVar(&options.DatabaseDSN, "d", "", "db address")
	fs.StringVar(&options.Config, "config", "config.json", "path to config file")
	fs.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	fs.StringVar(&options.LogLevel, "l", "info", "log level")
	fs.StringVar(&options.DefaultAccountKey, "k", DefaultAccountKey, "default account preference key")
	fs.StringVar(&options.TLSCert, "cert", "", "path to server TLS certificate")
	fs.StringVar(&options.TLSKey, "key", "", "path to server TLS key")
	fs.DurationVar(&options.CleanupInterval, "cleanup-interval", time.Hour, "removed account cleanup interval")
	fs.DurationVar(&options.RemovedRetention, "retention", 30*24*time.Hour, "how long removed accounts are kept")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			if err := applyFile(options, options.Config); err != nil {
				return nil, err
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		options.LogLevel = level
	}
	if key := os.Getenv("DEFAULT_ACCOUNT_KEY"); key != "" {
		options.DefaultAccountKey = key
	}

	return options, nil
}

func applyFile(options *Options, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("error while parsing config file: %w", err)
	}

	setIfNotEmpty(&options.Port, fc.Port)
	setIfNotEmpty(&options.DatabaseDSN, fc.DatabaseDSN)
	setIfNotEmpty(&options.LogLevel, fc.LogLevel)
	setIfNotEmpty(&options.DefaultAccountKey, fc.DefaultAccountKey)
	setIfNotEmpty(&options.TLSCert, fc.TLSCert)
	setIfNotEmpty(&options.TLSKey, fc.TLSKey)

	if fc.CleanupInterval != "" {
		if options.CleanupInterval, err = time.ParseDuration(fc.CleanupInterval); err != nil {
			return fmt.Errorf("cleanup_interval: %w", err)
		}
	}
	if fc.RemovedRetention != "" {
		if options.RemovedRetention, err = time.ParseDuration(fc.RemovedRetention); err != nil {
			return fmt.Errorf("removed_retention: %w", err)
		}
	}
	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
