package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendFile   = "file"
	BackendMemory = "memory"
)

const (
	DefaultDataDir   = "~/.local/share/rapbook"
	DefaultExportDir = "~/Documents/raps"
	DefaultBackend   = BackendSQLite
	DefaultLogLevel  = "info"
	DefaultLogKeep   = 5
)

// Config holds the settings shared by all rapbook binaries
type Config struct {
	DataDir   string `yaml:"data_dir"`
	Backend   string `yaml:"backend"`
	ExportDir string `yaml:"export_dir"`
	LogLevel  string `yaml:"log_level"`
	LogKeep   int    `yaml:"log_keep"` // log files kept by the TUI
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DataDir:   DefaultDataDir,
		Backend:   DefaultBackend,
		ExportDir: DefaultExportDir,
		LogLevel:  DefaultLogLevel,
		LogKeep:   DefaultLogKeep,
	}
}

// FilePath returns the config file location, honoring $XDG_CONFIG_HOME
func FilePath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "rapbook", "config.yaml")
}

// Load reads the config file, a .env file in the working directory and
// RAPBOOK_* environment variables, in increasing priority
func Load() (*Config, error) {
	return LoadFrom(FilePath(), ".env")
}

// LoadFrom is Load with explicit file locations. Missing files are skipped.
func LoadFrom(yamlPath, envPath string) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", yamlPath, err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read %s: %w", yamlPath, err)
		}
	}

	// .env never overrides variables already set in the environment
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	cfg.DataDir = getEnv("RAPBOOK_DATA_DIR", cfg.DataDir)
	cfg.Backend = getEnv("RAPBOOK_BACKEND", cfg.Backend)
	cfg.ExportDir = getEnv("RAPBOOK_EXPORT_DIR", cfg.ExportDir)
	cfg.LogLevel = getEnv("RAPBOOK_LOG_LEVEL", cfg.LogLevel)
	if keep := getEnv("RAPBOOK_LOG_KEEP", ""); keep != "" {
		n, err := strconv.Atoi(keep)
		if err != nil {
			return nil, fmt.Errorf("invalid RAPBOOK_LOG_KEEP %q: %w", keep, err)
		}
		cfg.LogKeep = n
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Override applies command-line values on top of the loaded config.
// Empty values are ignored.
func (c *Config) Override(dataDir, backend string) error {
	if dataDir != "" {
		c.DataDir = dataDir
	}
	if backend != "" {
		c.Backend = backend
	}
	c.normalize()
	return c.Validate()
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.Backend, validation.Required,
			validation.In(BackendSQLite, BackendBadger, BackendFile, BackendMemory)),
		validation.Field(&c.DataDir, validation.When(c.Backend != BackendMemory, validation.Required)),
		validation.Field(&c.LogLevel, validation.In("trace", "debug", "info", "warn", "error")),
		validation.Field(&c.LogKeep, validation.Required, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LogDir returns where the TUI writes its log files
func (c Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func (c *Config) normalize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.DataDir = ExpandHome(strings.TrimSpace(c.DataDir))
	c.ExportDir = ExpandHome(strings.TrimSpace(c.ExportDir))
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
