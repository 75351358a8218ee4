package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/git-version-builder/internal/domain/gitversion"
	"github.com/oshokin/git-version-builder/internal/repository/gitrepo"
	"github.com/oshokin/git-version-builder/internal/testutil"
)

const fullCommitID = "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678"

// stubDescriber returns a fixed describe result.
type stubDescriber struct {
	desc *gitrepo.Description
	err  error
}

func (s *stubDescriber) Describe(_ context.Context, _ string) (*gitrepo.Description, error) {
	return s.desc, s.err
}

// TestResolve_Cases covers the tagged, distance and untagged rules.
func TestResolve_Cases(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		desc *gitrepo.Description
		want gitversion.Descriptor
	}{
		"no tag": {
			desc: &gitrepo.Description{CommitID: fullCommitID, Branch: "master"},
			want: gitversion.Descriptor{
				TagName:       "master",
				ShortCommitID: "a1b2c3d",
				VersionString: "master-ga1b2c3d",
			},
		},
		"exact tag": {
			desc: &gitrepo.Description{Tag: "1.0.1", CommitID: fullCommitID, Branch: "master"},
			want: gitversion.Descriptor{
				TagName:       "1.0.1",
				ShortCommitID: "a1b2c3d",
				VersionString: "1.0.1",
			},
		},
		"after tag": {
			desc: &gitrepo.Description{Tag: "1.0.1", CommitsSinceTag: 1, CommitID: fullCommitID},
			want: gitversion.Descriptor{
				TagName:         "1.0.1",
				CommitsSinceTag: 1,
				ShortCommitID:   "a1b2c3d",
				VersionString:   "1.0.1-1-ga1b2c3d",
			},
		},
		"detached": {
			desc: &gitrepo.Description{CommitID: fullCommitID},
			want: gitversion.Descriptor{
				TagName:       "HEAD",
				ShortCommitID: "a1b2c3d",
				VersionString: "HEAD-ga1b2c3d",
			},
		},
	}

	for name, tc := range cases {
		tc := tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(context.Background(), &stubDescriber{desc: tc.desc}, "/repo")
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// TestResolve_WrapsFailures verifies collaborator failures become RepositoryError.
func TestResolve_WrapsFailures(t *testing.T) {
	t.Parallel()

	_, err := Resolve(context.Background(), &stubDescriber{err: errors.New("exec: git not found")}, "/repo")

	var repoErr *gitversion.RepositoryError
	require.ErrorAs(t, err, &repoErr)
	require.Equal(t, "/repo", repoErr.Path)

	_, err = Resolve(context.Background(), &stubDescriber{desc: &gitrepo.Description{}}, "/repo")
	require.ErrorIs(t, err, gitversion.ErrNoCommits)
}

// TestResolve_Scenarios walks a real repository through untagged, tagged and post-tag states.
func TestResolve_Scenarios(t *testing.T) {
	t.Parallel()

	repo := testutil.NewRepo(t)
	describer := gitrepo.NewNative()
	ctx := context.Background()

	commit := repo.Commit()

	got, err := Resolve(ctx, describer, repo.Dir)
	require.NoError(t, err)
	require.Equal(t, "master", got.TagName)
	require.Equal(t, "master-g"+commit[:7], got.VersionString)

	repo.Tag("1.0.1")

	got, err = Resolve(ctx, describer, repo.Dir)
	require.NoError(t, err)
	require.Equal(t, "1.0.1", got.VersionString)
	require.Zero(t, got.CommitsSinceTag)

	commit = repo.Commit()

	got, err = Resolve(ctx, describer, repo.Dir)
	require.NoError(t, err)
	require.Equal(t, "1.0.1-1-g"+commit[:7], got.VersionString)
	require.Equal(t, uint(1), got.CommitsSinceTag)
	require.Equal(t, commit[:7], got.ShortCommitID)

	again, err := Resolve(ctx, describer, repo.Dir)
	require.NoError(t, err)
	require.Equal(t, got, again)
}
