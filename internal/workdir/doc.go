// Package workdir scopes a change of the process working directory.
//
// Within enters a directory, runs a callback, and always returns to the
// previous directory afterwards, whether the callback succeeds, fails, or
// panics. The working directory is process-wide state, so callers must not
// use Within from concurrent goroutines.
package workdir
