package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
)

const commitID = "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678"

// TestRender_PythonUntagged checks the exact python output of a fresh repository.
func TestRender_PythonUntagged(t *testing.T) {
	t.Parallel()

	got, err := Default().Render(gitversion.NewUntagged("master", commitID), "python")
	require.NoError(t, err)
	require.Equal(t, `# ---------------------------------------------------
# This file is autogenerated by git-version-builder.
# DO NOT MODIFY!
# ---------------------------------------------------

VERSION_STRING = "master-ga1b2c3d"
TAG_NAME = "master"
COMMITS_SINCE_TAG = 0
GIT_COMMIT_ID = "a1b2c3d"
`, got)
}

// TestRender_PythonAfterTag checks the describe grammar in python output.
func TestRender_PythonAfterTag(t *testing.T) {
	t.Parallel()

	got, err := Default().Render(gitversion.NewTagged("1.0.1", 1, commitID), "python")
	require.NoError(t, err)
	require.Contains(t, got, "VERSION_STRING = \"1.0.1-1-ga1b2c3d\"\n")
	require.Contains(t, got, "TAG_NAME = \"1.0.1\"\n")
	require.Contains(t, got, "COMMITS_SINCE_TAG = 1\n")
}

// TestRender_CPPTagged checks the exact C++ header for a commit on a tag.
func TestRender_CPPTagged(t *testing.T) {
	t.Parallel()

	got, err := Default().Render(gitversion.NewTagged("1.0.1", 0, commitID), "cpp")
	require.NoError(t, err)
	require.Equal(t, `// ---------------------------------------------------
// This file is autogenerated by git-version-builder.
// DO NOT MODIFY!
// ---------------------------------------------------

#pragma once
#ifndef __GITVERSIONBUILDER__VERSION_H__
#define __GITVERSIONBUILDER__VERSION_H__

namespace version {
  constexpr const char *VERSION_STRING = "1.0.1";
  constexpr const char *TAG_NAME = "1.0.1";
  constexpr const unsigned int COMMITS_SINCE_TAG = 0;
  constexpr const char *GIT_COMMIT_ID = "a1b2c3d";
}

#endif
`, got)
}

// TestRender_Go checks the Go target output.
func TestRender_Go(t *testing.T) {
	t.Parallel()

	got, err := Default().Render(gitversion.NewTagged("v3.2.1", 4, commitID), "go")
	require.NoError(t, err)
	require.Equal(t, `// ---------------------------------------------------
// This file is autogenerated by git-version-builder.
// DO NOT MODIFY!
// ---------------------------------------------------

package version

const VERSION_STRING = "v3.2.1-4-ga1b2c3d"
const TAG_NAME = "v3.2.1"
const COMMITS_SINCE_TAG uint = 4
const GIT_COMMIT_ID = "a1b2c3d"
`, got)
}

// TestRender_Deterministic verifies repeated renders are byte-identical.
func TestRender_Deterministic(t *testing.T) {
	t.Parallel()

	registry := Default()
	descriptor := gitversion.NewTagged("2.0.0", 7, commitID)

	for _, language := range registry.Languages() {
		first, err := registry.Render(descriptor, language)
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			again, err := Default().Render(descriptor, language)
			require.NoError(t, err)
			require.Equal(t, first, again, language)
		}
	}
}

// TestRender_EscapesQuotes verifies string literals stay well-formed.
func TestRender_EscapesQuotes(t *testing.T) {
	t.Parallel()

	descriptor := gitversion.NewTagged(`say"hi\`, 0, commitID)

	got, err := Default().Render(descriptor, "python")
	require.NoError(t, err)
	require.Contains(t, got, `TAG_NAME = "say\"hi\\"`)

	got, err = Default().Render(descriptor, "go")
	require.NoError(t, err)
	require.Contains(t, got, `const TAG_NAME = "say\"hi\\"`)
}

// TestRegistry_Unsupported verifies unknown languages fail with UnsupportedLanguageError.
func TestRegistry_Unsupported(t *testing.T) {
	t.Parallel()

	got, err := Default().Render(gitversion.NewUntagged("master", commitID), "cobol")
	require.Empty(t, got)

	var langErr *gitversion.UnsupportedLanguageError
	require.ErrorAs(t, err, &langErr)
	require.Equal(t, "cobol", langErr.Language)
	require.Equal(t, []string{"cpp", "go", "python"}, langErr.Supported)
}

// TestRegistry_Extensible verifies a new language is a pure registration.
func TestRegistry_Extensible(t *testing.T) {
	t.Parallel()

	rule, err := NewRule("shell", "POSIX shell variables", "version.sh",
		"{{ disclaimer \"#\" }}\n\nVERSION_STRING={{ quote .VersionString }}\n", quoteC)
	require.NoError(t, err)

	registry := Default()
	registry.Register(rule)

	got, err := registry.Render(gitversion.NewTagged("1.0.0", 0, commitID), "SHELL")
	require.NoError(t, err)
	require.Contains(t, got, "# DO NOT MODIFY!\n")
	require.Contains(t, got, "\n\nVERSION_STRING=\"1.0.0\"\n")
	require.Len(t, registry.Rules(), 4)

	_, err = NewRule("broken", "", "", "{{ .Nope", quoteC)
	require.Error(t, err)
}

// TestRegistry_RegisterNormalizesLanguage verifies mixed-case ids stay reachable.
func TestRegistry_RegisterNormalizesLanguage(t *testing.T) {
	t.Parallel()

	rule, err := NewRule(" Shell ", "POSIX shell variables", "version.sh",
		"VERSION_STRING={{ quote .VersionString }}\n", quoteC)
	require.NoError(t, err)

	registry := NewRegistry(rule)

	for _, id := range []string{"shell", "Shell", "SHELL"} {
		got, getErr := registry.Get(id)
		require.NoError(t, getErr, id)
		require.Same(t, rule, got)
	}

	require.Equal(t, []string{"shell"}, registry.Languages())
}
