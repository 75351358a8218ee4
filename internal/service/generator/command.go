package generator

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/git-version-builder/internal/config"
	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
	"github.com/oshokin/git-version-builder/internal/logger"
	"github.com/oshokin/git-version-builder/internal/repository/gitrepo"
	"github.com/oshokin/git-version-builder/internal/service/renderer"
	"github.com/oshokin/git-version-builder/internal/service/resolver"
)

// StdoutPath as an output path writes the generated file to Options.Stdout.
const StdoutPath = "-"

// Options contains inputs for the generator entry point.
// Empty string fields fall back to the configuration file.
type Options struct {
	// ConfigPath is the settings file; defaults to config.DefaultConfigFilename.
	ConfigPath string
	// ConfigRequired makes a missing settings file an error.
	ConfigRequired bool
	// Dir is the repository directory.
	Dir string
	// Output is the generated file path; "-" writes to Stdout.
	Output string
	// Language is the target language id.
	Language string
	// Backend is "cli" or "native".
	Backend string
	// GitBinary is the git executable for the cli backend.
	GitBinary string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Stdout receives the output when Output is "-"; defaults to os.Stdout.
	Stdout io.Writer
	// Registry overrides the set of languages; defaults to renderer.Default().
	Registry *renderer.Registry
}

// Result describes a completed run.
type Result struct {
	// Descriptor is the resolved version metadata.
	Descriptor gitversion.Descriptor
	// Language is the rendered language id.
	Language string
	// Path is where the output went, "-" for stdout.
	Path string
	// Changed is false when the existing file already had identical content.
	Changed bool
}

// Run resolves the repository version and writes the rendered file.
func Run(ctx context.Context, opts *Options) (*Result, error) {
	ctx = logger.WithName(ctx, "generator")

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	registry := opts.Registry
	if registry == nil {
		registry = renderer.Default()
	}

	// Unknown languages are reported before the repository is touched.
	rule, err := registry.Get(cfg.Language)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == "" {
		output = rule.DefaultFilename
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	ctx = logger.WithKV(ctx, "dir", dir, "language", rule.Language)

	logger.DebugKV(ctx, "Resolving version", "backend", cfg.Backend)

	descriptor, err := resolver.Resolve(ctx, newDescriber(cfg), dir)
	if err != nil {
		return nil, err
	}

	content, err := rule.Render(descriptor)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Descriptor: descriptor,
		Language:   rule.Language,
		Path:       output,
		Changed:    true,
	}

	if output == StdoutPath {
		stdout := opts.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}

		if _, err = io.WriteString(stdout, content); err != nil {
			return nil, fmt.Errorf("write output: %w", err)
		}

		return result, nil
	}

	result.Changed, err = writeIfChanged(output, []byte(content))
	if err != nil {
		return nil, err
	}

	if result.Changed {
		logger.InfoKV(ctx, "Version file written", "path", output, "version", descriptor.VersionString)
	} else {
		logger.InfoKV(ctx, "Version file is up to date", "path", output, "version", descriptor.VersionString)
	}

	return result, nil
}

// loadConfig reads the settings file and applies option overrides.
func loadConfig(opts *Options) (*config.Config, error) {
	load := config.LoadOrDefault
	if opts.ConfigRequired {
		load = config.Load
	}

	cfg, err := load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	overrides := []struct {
		value  string
		target *string
	}{
		{opts.Output, &cfg.Output},
		{opts.Language, &cfg.Language},
		{opts.Backend, &cfg.Backend},
		{opts.GitBinary, &cfg.GitBinary},
		{opts.LogLevel, &cfg.LogLevel},
	}

	for _, o := range overrides {
		if o.value != "" {
			*o.target = o.value
		}
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newDescriber picks the describe backend.
//
//nolint:ireturn // Callers only need the interface.
func newDescriber(cfg *config.Config) gitrepo.Describer {
	if cfg.Backend == config.BackendNative {
		return gitrepo.NewNative()
	}

	return gitrepo.NewCLI(cfg.GitBinary)
}
