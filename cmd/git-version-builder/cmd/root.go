package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/git-version-builder/internal/config"
	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
	"github.com/oshokin/git-version-builder/internal/logger"
	"github.com/oshokin/git-version-builder/internal/service/generator"
	"github.com/oshokin/git-version-builder/internal/version"
)

// Process exit codes.
const (
	// ExitFailure covers usage, configuration and I/O errors.
	ExitFailure = 1
	// ExitRepository means the repository could not be read.
	ExitRepository = 2
	// ExitUnsupportedLanguage means no template exists for the requested language.
	ExitUnsupportedLanguage = 3
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// repositoryDir is the repository to describe.
	repositoryDir string
	// language is the target language id.
	language string
	// backend selects the describe backend.
	backend string
	// gitBinary is the git executable for the cli backend.
	gitBinary string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for generating a version file.
	rootCmd = &cobra.Command{
		Use:   "git-version-builder [output-file]",
		Short: "Generate a version source file from git metadata.",
		Long: `Derive the version of a git repository from its nearest tag and write it
as a source file in the chosen language.

The version string is the tag itself when HEAD is tagged, "<tag>-<n>-g<hash>"
when HEAD is n commits past the tag, and "<branch>-g<hash>" when no tag is
reachable. The file is rewritten only when its content changes.

Use "-" as output file to print to stdout. Without an output file the path
from the configuration file or the language's default file name is used.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var output string
			if len(args) > 0 {
				output = args[0]
			}

			options := &generator.Options{
				ConfigPath:     configPath,
				ConfigRequired: cmd.Flags().Changed("config"),
				Dir:            repositoryDir,
				Output:         output,
				Language:       language,
				Backend:        backend,
				GitBinary:      gitBinary,
				LogLevel:       logLevel,
				Stdout:         cmd.OutOrStdout(),
			}

			_, err := generator.Run(ctx, options)

			return err
		},
	}
)

// Execute runs the git-version-builder CLI and exits with a non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	ctx := logger.WithName(context.Background(), "git-version-builder")

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error(ctx, err)
		os.Exit(ExitCode(err))
	}
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	var (
		repoErr *gitversion.RepositoryError
		langErr *gitversion.UnsupportedLanguageError
	)

	switch {
	case err == nil:
		return 0
	case errors.As(err, &langErr):
		return ExitUnsupportedLanguage
	case errors.As(err, &repoErr):
		return ExitRepository
	default:
		return ExitFailure
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&repositoryDir, "dir", "d", ".", "git repository directory")
	rootCmd.Flags().StringVarP(&language, "lang", "l", "", `target language (default from config, then "`+config.DefaultLanguage+`")`)
	rootCmd.Flags().StringVarP(&backend, "backend", "b", "", `describe backend: cli or native (default from config, then "`+config.BackendCLI+`")`)
	rootCmd.Flags().StringVar(&gitBinary, "git", "", "git executable used by the cli backend")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(languagesCmd)
}
