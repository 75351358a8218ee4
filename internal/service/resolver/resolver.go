// Package resolver turns a describe query result into a version Descriptor.
package resolver

import (
	"context"

	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
	"github.com/oshokin/git-version-builder/internal/logger"
	"github.com/oshokin/git-version-builder/internal/repository/gitrepo"
)

// Resolve queries the repository at path once and composes its Descriptor.
// Failures are always reported as *gitversion.RepositoryError.
func Resolve(ctx context.Context, describer gitrepo.Describer, path string) (gitversion.Descriptor, error) {
	desc, err := describer.Describe(ctx, path)
	if err != nil {
		return gitversion.Descriptor{}, gitversion.NewRepositoryError(path, err)
	}

	if desc.CommitID == "" {
		return gitversion.Descriptor{}, gitversion.NewRepositoryError(path, gitversion.ErrNoCommits)
	}

	var descriptor gitversion.Descriptor
	if desc.HasTag() {
		descriptor = gitversion.NewTagged(desc.Tag, desc.CommitsSinceTag, desc.CommitID)
	} else {
		descriptor = gitversion.NewUntagged(desc.Branch, desc.CommitID)
	}

	logger.DebugKV(ctx, "Resolved version",
		"version", descriptor.VersionString,
		"tag", descriptor.TagName,
		"commits_since_tag", descriptor.CommitsSinceTag,
		"commit", descriptor.ShortCommitID,
	)

	return descriptor, nil
}
