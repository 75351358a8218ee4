package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// Repo is a git repository in a temporary directory.
type Repo struct {
	// Dir is the working tree root.
	Dir string

	t       testing.TB
	repo    *git.Repository
	clock   time.Time
	commits int
}

// NewRepo initializes an empty repository whose HEAD points at master.
func NewRepo(t testing.TB) *Repo {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	return &Repo{
		Dir:   dir,
		t:     t,
		repo:  repo,
		clock: time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Commit adds a new file, commits it and returns the full commit id.
func (r *Repo) Commit() string {
	r.t.Helper()

	r.commits++
	name := "file-" + strconv.Itoa(r.commits) + ".txt"

	require.NoError(r.t, os.WriteFile(filepath.Join(r.Dir, name), []byte(name), 0o600))

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	_, err = wt.Add(name)
	require.NoError(r.t, err)

	hash, err := wt.Commit("commit "+name, &git.CommitOptions{
		Author: r.signature(),
	})
	require.NoError(r.t, err)

	return hash.String()
}

// Tag creates a lightweight tag at HEAD.
func (r *Repo) Tag(name string) {
	r.t.Helper()

	_, err := r.repo.CreateTag(name, r.head(), nil)
	require.NoError(r.t, err)
}

// AnnotatedTag creates an annotated tag at HEAD.
func (r *Repo) AnnotatedTag(name string) {
	r.t.Helper()

	_, err := r.repo.CreateTag(name, r.head(), &git.CreateTagOptions{
		Tagger:  r.signature(),
		Message: "release " + name,
	})
	require.NoError(r.t, err)
}

// NewBranch creates a branch at HEAD and checks it out.
func (r *Repo) NewBranch(name string) {
	r.t.Helper()

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	require.NoError(r.t, wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	}))
}

// Checkout switches to an existing branch.
func (r *Repo) Checkout(name string) {
	r.t.Helper()

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	require.NoError(r.t, wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
	}))
}

// Detach checks out HEAD's commit directly.
func (r *Repo) Detach() {
	r.t.Helper()

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)

	require.NoError(r.t, wt.Checkout(&git.CheckoutOptions{
		Hash: r.head(),
	}))
}

func (r *Repo) head() plumbing.Hash {
	r.t.Helper()

	ref, err := r.repo.Head()
	require.NoError(r.t, err)

	return ref.Hash()
}

func (r *Repo) signature() *object.Signature {
	r.clock = r.clock.Add(time.Minute)

	return &object.Signature{
		Name:  "Version Builder",
		Email: "builder@example.com",
		When:  r.clock,
	}
}

// RequireGit skips the test when no git executable is available.
func RequireGit(t testing.TB) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not found in PATH")
	}
}
