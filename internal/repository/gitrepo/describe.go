package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Describer answers the describe query for the repository at path.
type Describer interface {
	Describe(ctx context.Context, path string) (*Description, error)
}

// Description is the raw result of a describe query.
type Description struct {
	// Tag is the nearest tag reachable from HEAD, empty when there is none.
	Tag string
	// CommitsSinceTag is the number of commits between Tag and HEAD.
	CommitsSinceTag uint
	// CommitID is the full hex id of the HEAD commit.
	CommitID string
	// Branch is the branch HEAD points at, empty when HEAD is detached.
	Branch string
}

// HasTag reports whether a tag is reachable from HEAD.
func (d *Description) HasTag() bool {
	return d.Tag != ""
}

// errMalformedDescribe is returned for describe output outside the long format.
var errMalformedDescribe = errors.New("malformed describe output")

// parseLongDescribe splits `git describe --long` output of the form
// "<tag>-<count>-g<hash>". Tags may contain dashes, so the string is split
// from the right.
func parseLongDescribe(out string) (string, uint, string, error) {
	out = strings.TrimSpace(out)

	hashAt := strings.LastIndex(out, "-g")
	if hashAt <= 0 {
		return "", 0, "", fmt.Errorf("%w: %q", errMalformedDescribe, out)
	}

	hash := out[hashAt+2:]
	if hash == "" || !isHex(hash) {
		return "", 0, "", fmt.Errorf("%w: bad hash in %q", errMalformedDescribe, out)
	}

	rest := out[:hashAt]

	countAt := strings.LastIndex(rest, "-")
	if countAt <= 0 {
		return "", 0, "", fmt.Errorf("%w: %q", errMalformedDescribe, out)
	}

	count, err := strconv.ParseUint(rest[countAt+1:], 10, 0)
	if err != nil {
		return "", 0, "", fmt.Errorf("%w: bad count in %q", errMalformedDescribe, out)
	}

	return rest[:countAt], uint(count), hash, nil
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}

	return true
}
