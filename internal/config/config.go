package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the settings for a version file generation run.
type Config struct {
	// Language is the id of the target language template.
	Language string `yaml:"language"`
	// Output is the path of the generated file; "-" means stdout.
	Output string `yaml:"output,omitempty"`
	// Backend selects how the repository is queried: "cli" or "native".
	Backend string `yaml:"backend"`
	// GitBinary is the git executable used by the cli backend.
	GitBinary string `yaml:"git_binary"`
	// LogLevel is the minimum level of log messages.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for settings.
	DefaultConfigFilename = ".git-version-builder.yaml"

	// DefaultLanguage is the target language when none is configured.
	DefaultLanguage = "python"

	// BackendCLI queries the repository through the git executable.
	BackendCLI = "cli"

	// BackendNative reads the repository in-process.
	BackendNative = "native"

	// DefaultGitBinary is the git executable looked up in PATH.
	DefaultGitBinary = "git"

	// DefaultLogLevel is the log level when none is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o644
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownBackend is returned for a backend other than cli or native.
	errUnknownBackend = errors.New("unknown backend")
	// errUnknownLogLevel is returned for an unparsable log level.
	errUnknownLogLevel = errors.New("unknown log level")
)

// Default returns a configuration populated with default values.
func Default() *Config {
	cfg := new(Config)

	// Defaults are always valid.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return cfg, err
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and checks enumerated fields.
// The language is not checked here; the renderer owns the list of targets.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case "":
		cfg.Backend = BackendCLI
	case BackendCLI, BackendNative:
	default:
		return fmt.Errorf("%w %q (expected %s or %s)", errUnknownBackend, cfg.Backend, BackendCLI, BackendNative)
	}

	if cfg.GitBinary == "" {
		cfg.GitBinary = DefaultGitBinary
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = DefaultLogLevel
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w %q", errUnknownLogLevel, cfg.LogLevel)
	}

	return nil
}
