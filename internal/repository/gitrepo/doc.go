// Package gitrepo answers the describe query for a git repository.
//
// Two Describer implementations are provided: CLI runs the git executable
// inside the repository directory, Native reads the object database with
// go-git. Both report failures as gitversion.RepositoryError.
package gitrepo
