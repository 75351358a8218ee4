// Package renderer formats a version Descriptor as a source file.
//
// Each target language is a Rule: an embedded text/template plus the
// string-literal quoting of that language. Rules live in a Registry keyed
// by language id, so adding a target means registering one more Rule.
// Rendering is a pure function of the descriptor; the same input always
// produces byte-identical output.
package renderer
