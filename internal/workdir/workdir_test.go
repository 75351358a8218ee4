package workdir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// These tests change the process working directory and therefore never run in parallel.

// TestWithin_RestoresAfterSuccess verifies fn runs inside dir and the previous directory comes back.
func TestWithin_RestoresAfterSuccess(t *testing.T) {
	start := t.TempDir()
	target := t.TempDir()

	testChdir(t, start)

	var inside string

	err := Within(target, func() error {
		var err error

		inside, err = os.Getwd()

		return err
	})
	require.NoError(t, err)
	require.Equal(t, evalDir(t, target), evalDir(t, inside))
	require.Equal(t, evalDir(t, start), evalDir(t, cwd(t)))
}

// TestWithin_RestoresAfterError verifies the callback error is returned and the directory restored.
func TestWithin_RestoresAfterError(t *testing.T) {
	start := t.TempDir()

	testChdir(t, start)

	boom := errors.New("boom")

	err := Within(t.TempDir(), func() error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, evalDir(t, start), evalDir(t, cwd(t)))
}

// TestWithin_RestoresAfterPanic verifies the deferred restore runs while a panic unwinds.
func TestWithin_RestoresAfterPanic(t *testing.T) {
	start := t.TempDir()

	testChdir(t, start)

	require.Panics(t, func() {
		_ = Within(t.TempDir(), func() error {
			panic("boom")
		})
	})
	require.Equal(t, evalDir(t, start), evalDir(t, cwd(t)))
}

// TestWithin_MissingDirectory verifies nothing changes when dir cannot be entered.
func TestWithin_MissingDirectory(t *testing.T) {
	start := t.TempDir()

	testChdir(t, start)

	called := false

	err := Within(filepath.Join(start, "missing"), func() error {
		called = true
		return nil
	})
	require.Error(t, err)
	require.False(t, called)
	require.Equal(t, evalDir(t, start), evalDir(t, cwd(t)))
}

// TestEnter_RestoreIsIdempotent verifies a second restore call is a no-op.
func TestEnter_RestoreIsIdempotent(t *testing.T) {
	start := t.TempDir()

	testChdir(t, start)

	restore, err := Enter(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, restore())
	require.NoError(t, restore())
	require.Equal(t, evalDir(t, start), evalDir(t, cwd(t)))
}

func cwd(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	return dir
}

// evalDir resolves symlinks so that temp directories compare equal on macOS.
func evalDir(t *testing.T, dir string) string {
	t.Helper()

	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	return resolved
}
