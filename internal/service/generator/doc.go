// Package generator runs the resolve, render and write pipeline behind the
// git-version-builder command.
//
// The target language is checked before the repository is queried, and the
// output file is replaced atomically and only when its content changes, so
// unchanged repositories leave generated files (and their mtimes) alone.
package generator
