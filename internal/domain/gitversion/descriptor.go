package gitversion

import "strconv"

// ShortCommitIDLength is the fixed width of an abbreviated commit id.
const ShortCommitIDLength = 7

// DetachedHead is used as the tag name of an untagged repository whose HEAD
// does not point at a branch.
const DetachedHead = "HEAD"

// Descriptor is the version metadata computed for one repository state.
type Descriptor struct {
	// TagName is the nearest reachable tag, or the branch name when no tag exists.
	TagName string
	// CommitsSinceTag is the number of commits between TagName and HEAD.
	CommitsSinceTag uint
	// ShortCommitID is the abbreviated HEAD commit id.
	ShortCommitID string
	// VersionString is the composed human-readable version.
	VersionString string
}

// NewTagged builds a descriptor for a HEAD that has a reachable tag.
// A zero distance means HEAD is the tagged commit and the version is the tag itself.
func NewTagged(tag string, commitsSinceTag uint, commitID string) Descriptor {
	short := ShortCommitID(commitID)

	versionString := tag
	if commitsSinceTag > 0 {
		versionString = tag + "-" + strconv.FormatUint(uint64(commitsSinceTag), 10) + "-g" + short
	}

	return Descriptor{
		TagName:         tag,
		CommitsSinceTag: commitsSinceTag,
		ShortCommitID:   short,
		VersionString:   versionString,
	}
}

// NewUntagged builds a descriptor for a repository without any reachable tag.
// The branch name stands in for the tag; an empty branch means detached HEAD.
func NewUntagged(branch, commitID string) Descriptor {
	if branch == "" {
		branch = DetachedHead
	}

	short := ShortCommitID(commitID)

	return Descriptor{
		TagName:         branch,
		CommitsSinceTag: 0,
		ShortCommitID:   short,
		VersionString:   branch + "-g" + short,
	}
}

// ShortCommitID truncates a commit id to ShortCommitIDLength characters.
func ShortCommitID(commitID string) string {
	if len(commitID) <= ShortCommitIDLength {
		return commitID
	}

	return commitID[:ShortCommitIDLength]
}
