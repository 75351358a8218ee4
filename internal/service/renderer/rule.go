package renderer

import (
	"bytes"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
)

//go:embed templates/*.tmpl
var templates embed.FS

// disclaimerLines are written at the top of every generated file.
//
//nolint:gochecknoglobals // Fixed text shared by all templates.
var disclaimerLines = []string{
	"---------------------------------------------------",
	"This file is autogenerated by git-version-builder.",
	"DO NOT MODIFY!",
	"---------------------------------------------------",
}

// Rule renders descriptors for one target language.
type Rule struct {
	// Language is the id used to select the rule.
	Language string
	// Description is a short human-readable summary of the output.
	Description string
	// DefaultFilename is the suggested output file name.
	DefaultFilename string
	// tmpl is the parsed output template.
	tmpl *template.Template
}

// NewRule parses source as the template of a language whose string
// literals are produced by quote.
func NewRule(language, description, defaultFilename, source string, quote func(string) string) (*Rule, error) {
	funcs := template.FuncMap{
		"disclaimer": disclaimer,
		"quote":      quote,
	}

	tmpl, err := template.New(language).Option("missingkey=error").Funcs(funcs).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse %s template: %w", language, err)
	}

	return &Rule{
		Language:        language,
		Description:     description,
		DefaultFilename: defaultFilename,
		tmpl:            tmpl,
	}, nil
}

// Render formats the descriptor.
func (r *Rule) Render(descriptor gitversion.Descriptor) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, descriptor); err != nil {
		return "", fmt.Errorf("render %s: %w", r.Language, err)
	}

	return buf.String(), nil
}

// disclaimer prefixes every disclaimer line with the comment marker.
func disclaimer(marker string) string {
	lines := make([]string, len(disclaimerLines))
	for i, line := range disclaimerLines {
		lines[i] = marker + " " + line
	}

	return strings.Join(lines, "\n")
}

// quoteC produces a double-quoted literal valid in both Python and C++.
func quoteC(s string) string {
	return `"` + cEscaper.Replace(s) + `"`
}

//nolint:gochecknoglobals // Stateless and safe for concurrent use.
var cEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// builtinRule loads an embedded template; embedded templates are covered by tests.
func builtinRule(language, description, defaultFilename string, quote func(string) string) *Rule {
	source, err := templates.ReadFile("templates/" + language + ".tmpl")
	if err != nil {
		panic(err)
	}

	rule, err := NewRule(language, description, defaultFilename, string(source), quote)
	if err != nil {
		panic(err)
	}

	return rule
}

// Python renders module-level bindings.
func Python() *Rule {
	return builtinRule("python", "Python module with module-level constants", "version.py", quoteC)
}

// CPP renders an include-guarded header with constexpr constants in namespace version.
func CPP() *Rule {
	return builtinRule("cpp", "C++ header with constexpr constants in namespace version", "version.h", quoteC)
}

// Go renders a package named version with untyped string constants and a
// typed uint COMMITS_SINCE_TAG.
func Go() *Rule {
	return builtinRule("go", "Go source file with constants in package version", "version.go", strconv.Quote)
}
