package renderer

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
)

// Registry holds the rules of all supported languages.
type Registry struct {
	rules map[string]*Rule
}

// NewRegistry creates a registry with the given rules.
func NewRegistry(rules ...*Rule) *Registry {
	r := &Registry{
		rules: make(map[string]*Rule, len(rules)),
	}

	for _, rule := range rules {
		r.Register(rule)
	}

	return r
}

// Default returns a registry with every built-in language.
func Default() *Registry {
	return NewRegistry(Python(), CPP(), Go())
}

// Register adds a rule, replacing any rule with the same language id.
// The id is stored lowercased and trimmed.
func (r *Registry) Register(rule *Rule) {
	rule.Language = normalizeLanguage(rule.Language)
	r.rules[rule.Language] = rule
}

// Get returns the rule for language or *gitversion.UnsupportedLanguageError.
// Language ids are case-insensitive.
func (r *Registry) Get(language string) (*Rule, error) {
	rule, ok := r.rules[normalizeLanguage(language)]
	if !ok {
		return nil, &gitversion.UnsupportedLanguageError{
			Language:  language,
			Supported: r.Languages(),
		}
	}

	return rule, nil
}

// Languages returns the registered language ids in sorted order.
func (r *Registry) Languages() []string {
	languages := lo.Keys(r.rules)
	slices.Sort(languages)

	return languages
}

// Rules returns the registered rules sorted by language id.
func (r *Registry) Rules() []*Rule {
	return lo.Map(r.Languages(), func(language string, _ int) *Rule {
		return r.rules[language]
	})
}

// Render formats descriptor for language.
func (r *Registry) Render(descriptor gitversion.Descriptor, language string) (string, error) {
	rule, err := r.Get(language)
	if err != nil {
		return "", err
	}

	return rule.Render(descriptor)
}

func normalizeLanguage(language string) string {
	return strings.ToLower(strings.TrimSpace(language))
}
