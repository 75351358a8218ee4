package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
	"github.com/oshokin/git-version-builder/internal/logger"
)

// Native answers describe queries by reading the repository with go-git.
// No git executable is required.
type Native struct{}

// tagCandidate is a tag whose commit is reachable from HEAD.
type tagCandidate struct {
	// name is the short tag name.
	name string
	// refName is the full reference name, used for git's refname order.
	refName string
	// commit is the commit the tag resolves to.
	commit plumbing.Hash
	// committed is the committer date of the tagged commit.
	committed time.Time
	// annotated is true for tag objects, false for lightweight tags.
	annotated bool
	// tagged is the tagger date of an annotated tag.
	tagged time.Time
	// depth is the number of commits reachable from HEAD but not from the tag.
	depth uint
}

// NewNative creates a go-git backed describer.
func NewNative() *Native {
	return &Native{}
}

// Describe opens the repository containing path and computes the nearest tag.
func (n *Native) Describe(ctx context.Context, path string) (*Description, error) {
	desc, err := n.describe(ctx, path)
	if err != nil {
		return nil, gitversion.NewRepositoryError(path, err)
	}

	return desc, nil
}

func (n *Native) describe(ctx context.Context, path string) (*Description, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, gitversion.ErrNotRepository
	} else if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, gitversion.ErrNoCommits
	} else if err != nil {
		return nil, fmt.Errorf("read HEAD: %w", err)
	}

	headAncestors, err := ancestors(ctx, repo, head.Hash())
	if err != nil {
		return nil, err
	}

	desc := &Description{
		CommitID: head.Hash().String(),
	}

	candidates, err := reachableTags(repo, headAncestors)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		if head.Name().IsBranch() {
			desc.Branch = head.Name().Short()
		}

		return desc, nil
	}

	best, err := nearestTag(ctx, repo, candidates, len(headAncestors))
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Nearest tag", "tag", best.name, "depth", best.depth, "candidates", len(candidates))

	desc.Tag = best.name
	desc.CommitsSinceTag = best.depth

	return desc, nil
}

// reachableTags lists tags that resolve to a commit in the given ancestor set.
// Tags pointing at trees or blobs are ignored.
func reachableTags(repo *git.Repository, reachable map[plumbing.Hash]struct{}) ([]*tagCandidate, error) {
	refs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	var candidates []*tagCandidate

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		candidate, ok := peelTag(repo, ref)
		if !ok {
			return nil
		}

		if _, ok = reachable[candidate.commit]; !ok {
			return nil
		}

		candidates = append(candidates, candidate)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterate tags: %w", err)
	}

	return candidates, nil
}

// peelTag resolves a tag reference to its commit.
func peelTag(repo *git.Repository, ref *plumbing.Reference) (*tagCandidate, bool) {
	candidate := &tagCandidate{
		name:    ref.Name().Short(),
		refName: ref.Name().String(),
	}

	var (
		commit *object.Commit
		err    error
	)

	if tag, tagErr := repo.TagObject(ref.Hash()); tagErr == nil {
		candidate.annotated = true
		candidate.tagged = tag.Tagger.When
		commit, err = tag.Commit()
	} else {
		commit, err = repo.CommitObject(ref.Hash())
	}

	if err != nil {
		return nil, false
	}

	candidate.commit = commit.Hash
	candidate.committed = commit.Committer.When

	return candidate, true
}

// nearestTag computes the depth of every candidate and returns the best one.
func nearestTag(
	ctx context.Context,
	repo *git.Repository,
	candidates []*tagCandidate,
	headReach int,
) (*tagCandidate, error) {
	depths := make(map[plumbing.Hash]uint, len(candidates))

	for _, candidate := range candidates {
		depth, ok := depths[candidate.commit]
		if !ok {
			tagAncestors, err := ancestors(ctx, repo, candidate.commit)
			if err != nil {
				return nil, err
			}

			depth = uint(headReach - len(tagAncestors))
			depths[candidate.commit] = depth
		}

		candidate.depth = depth
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return preferTag(candidates[i], candidates[j])
	})

	return candidates[0], nil
}

// preferTag orders candidates the way git describe does: fewer commits since
// the tag first, then the more recently committed tag target. Tags on the same
// commit prefer annotated over lightweight. Two annotated tags go by the newer
// tagger date, anything else keeps refname order.
func preferTag(a, b *tagCandidate) bool {
	if a.depth != b.depth {
		return a.depth < b.depth
	}

	if a.commit != b.commit {
		if !a.committed.Equal(b.committed) {
			return a.committed.After(b.committed)
		}

		return a.refName < b.refName
	}

	if a.annotated != b.annotated {
		return a.annotated
	}

	if a.annotated && !a.tagged.Equal(b.tagged) {
		return a.tagged.After(b.tagged)
	}

	return a.refName < b.refName
}

// ancestors returns the set of commits reachable from start, start included.
// Parents missing from a shallow clone end the walk on that path.
func ancestors(ctx context.Context, repo *git.Repository, start plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	seen := map[plumbing.Hash]struct{}{
		start: {},
	}
	queue := []plumbing.Hash{start}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hash := queue[0]
		queue = queue[1:]

		commit, err := repo.CommitObject(hash)
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			continue
		} else if err != nil {
			return nil, fmt.Errorf("read commit %s: %w", hash, err)
		}

		for _, parent := range commit.ParentHashes {
			if _, ok := seen[parent]; ok {
				continue
			}

			seen[parent] = struct{}{}
			queue = append(queue, parent)
		}
	}

	return seen, nil
}
