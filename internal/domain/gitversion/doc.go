// Package gitversion contains the core domain types of the version builder.
//
// It defines Descriptor (the version metadata derived from a repository) and
// the error taxonomy surfaced to callers: RepositoryError for anything that
// prevents reading the repository and UnsupportedLanguageError for unknown
// render targets.
package gitversion
