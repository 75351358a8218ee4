package gitversion

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotRepository means the path is not inside a git working tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrNoCommits means the repository exists but HEAD has no commit yet.
	ErrNoCommits = errors.New("repository has no commits")
	// ErrGitUnavailable means the git tooling could not be run at all.
	ErrGitUnavailable = errors.New("git is unavailable")
)

// RepositoryError reports that version metadata could not be read from a repository.
type RepositoryError struct {
	// Path is the repository path that was queried.
	Path string
	// Err is the underlying cause.
	Err error
}

// NewRepositoryError wraps err into a RepositoryError for path.
// An error that already is a RepositoryError is returned unchanged.
func NewRepositoryError(path string, err error) error {
	var repoErr *RepositoryError
	if errors.As(err, &repoErr) {
		return err
	}

	return &RepositoryError{
		Path: path,
		Err:  err,
	}
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %q: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// UnsupportedLanguageError reports a render target without a registered template rule.
type UnsupportedLanguageError struct {
	// Language is the requested language id.
	Language string
	// Supported lists the registered language ids.
	Supported []string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language %q (supported: %s)", e.Language, strings.Join(e.Supported, ", "))
}
