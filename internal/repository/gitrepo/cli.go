package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/oshokin/git-version-builder/internal/config"
	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
	"github.com/oshokin/git-version-builder/internal/logger"
	"github.com/oshokin/git-version-builder/internal/workdir"
)

// describeAbbrev is the hash width requested from git describe.
const describeAbbrev = "--abbrev=7"

// CLI answers describe queries by running the git executable.
type CLI struct {
	// binary is the git executable name or path.
	binary string
}

// commandError describes a git invocation that exited with a non-zero status.
type commandError struct {
	// args are the git arguments.
	args []string
	// stderr is the trimmed error output of git.
	stderr string
	// err is the exec error carrying the exit status.
	err error
}

func (e *commandError) Error() string {
	if e.stderr == "" {
		return fmt.Sprintf("git %s: %v", strings.Join(e.args, " "), e.err)
	}

	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.args, " "), e.err, e.stderr)
}

func (e *commandError) Unwrap() error {
	return e.err
}

// NewCLI creates a describer that runs binary, or git from PATH when binary is empty.
func NewCLI(binary string) *CLI {
	if binary == "" {
		binary = config.DefaultGitBinary
	}

	return &CLI{
		binary: binary,
	}
}

// Describe enters path, queries git and returns to the original working directory.
func (c *CLI) Describe(ctx context.Context, path string) (*Description, error) {
	var desc *Description

	err := workdir.Within(path, func() error {
		var err error

		desc, err = c.describe(ctx)

		return err
	})
	if err != nil {
		return nil, gitversion.NewRepositoryError(path, err)
	}

	return desc, nil
}

// describe runs the describe query in the current working directory.
func (c *CLI) describe(ctx context.Context) (*Description, error) {
	if _, err := c.git(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, notRepository(err)
	}

	var cmdErr *commandError

	// An unborn HEAD makes --verify exit non-zero without output.
	commitID, err := c.git(ctx, "rev-parse", "--verify", "--quiet", "HEAD^{commit}")
	if errors.As(err, &cmdErr) || (err == nil && commitID == "") {
		return nil, gitversion.ErrNoCommits
	} else if err != nil {
		return nil, err
	}

	desc := &Description{
		CommitID: commitID,
	}

	out, err := c.git(ctx, "describe", "--tags", "--long", describeAbbrev)

	switch {
	case err == nil:
		desc.Tag, desc.CommitsSinceTag, _, err = parseLongDescribe(out)
		if err != nil {
			return nil, err
		}
	case errors.As(err, &cmdErr):
		// git describe fails when no tag is reachable from HEAD.
		logger.DebugKV(ctx, "No reachable tag", "reason", cmdErr.stderr)
	default:
		return nil, err
	}

	if desc.HasTag() {
		return desc, nil
	}

	branch, err := c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, err
	}

	if branch != gitversion.DetachedHead {
		desc.Branch = branch
	}

	return desc, nil
}

// git runs the git executable with args and returns its trimmed stdout.
func (c *CLI) git(ctx context.Context, args ...string) (string, error) {
	//nolint:gosec // The binary comes from the user's own configuration.
	cmd := exec.CommandContext(ctx, c.binary, args...)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.DebugKV(ctx, "Running git", "args", args)

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), ctxErr)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &commandError{
				args:   args,
				stderr: strings.TrimSpace(stderr.String()),
				err:    err,
			}
		}

		return "", fmt.Errorf("%w: %w", gitversion.ErrGitUnavailable, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// notRepository marks a failed git invocation as ErrNotRepository while
// keeping the git error message; transport failures pass through unchanged.
func notRepository(err error) error {
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		return fmt.Errorf("%w: %w", gitversion.ErrNotRepository, err)
	}

	return err
}
