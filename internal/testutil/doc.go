// Package testutil builds throwaway git repositories for tests.
//
// Repositories are created with go-git, so tests do not depend on a git
// executable; commits get deterministic authors and increasing timestamps.
package testutil
