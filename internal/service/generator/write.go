package generator

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// outputFileMode is the permission of generated files.
const outputFileMode os.FileMode = 0o644

// writeIfChanged replaces path with content unless it already holds exactly
// that content. The new content goes to a temporary file in the same
// directory first and is renamed over path, so readers never see a partial file.
func writeIfChanged(path string, content []byte) (bool, error) {
	path = filepath.Clean(path)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return false, fmt.Errorf("read %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return false, fmt.Errorf("create temporary file: %w", err)
	}

	tmpName := tmp.Name()

	// Removing a renamed file fails harmlessly.
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return false, fmt.Errorf("write %s: %w", tmpName, err)
	}

	if err = tmp.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err = os.Chmod(tmpName, outputFileMode); err != nil {
		return false, fmt.Errorf("chmod %s: %w", tmpName, err)
	}

	if err = os.Rename(tmpName, path); err != nil {
		return false, fmt.Errorf("replace %s: %w", path, err)
	}

	return true, nil
}
