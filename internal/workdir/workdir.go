package workdir

import (
	"errors"
	"fmt"
	"os"
)

// errRestore marks failures to return to the original directory.
var errRestore = errors.New("restore working directory")

// Within changes the working directory to dir, calls fn and restores the
// original working directory before returning.
// A restore failure is returned only when fn itself succeeded.
func Within(dir string, fn func() error) (err error) {
	restore, err := Enter(dir)
	if err != nil {
		return err
	}

	defer func() {
		if restoreErr := restore(); restoreErr != nil && err == nil {
			err = restoreErr
		}
	}()

	return fn()
}

// Enter changes the working directory to dir and returns a function that
// changes it back. The returned function is safe to call more than once.
func Enter(dir string) (func() error, error) {
	previous, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	if err = os.Chdir(dir); err != nil {
		return nil, fmt.Errorf("enter %s: %w", dir, err)
	}

	restored := false

	return func() error {
		if restored {
			return nil
		}

		restored = true

		if err := os.Chdir(previous); err != nil {
			return errors.Join(errRestore, fmt.Errorf("return to %s: %w", previous, err))
		}

		return nil
	}, nil
}
