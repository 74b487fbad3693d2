package git

import (
	"errors"
	"fmt"
	"strings"
)

// Failure kinds surfaced by repository operations. The command executor
// matches on these with errors.Is and turns them into status messages;
// only ErrNotARepository is fatal, and only at startup.
var (
	ErrNotARepository = errors.New("not a git repository")
	ErrNoSuchPath     = errors.New("no such path")
	ErrNoSuchBranch   = errors.New("no such branch")
	ErrEmptyMessage   = errors.New("commit message is empty")
	ErrNothingStaged  = errors.New("nothing staged to commit")
	ErrDirtyWorktree  = errors.New("uncommitted changes would be overwritten")
	ErrNoRemote       = errors.New("no remote named origin")
	ErrAuthFailed     = errors.New("authentication failed")
	ErrNonFastForward = errors.New("push rejected: not a fast-forward")
	// ErrMergeNotSupported covers pulls that would require a merge or hit
	// conflicts. Merges are never auto-resolved here; resolve on the CLI.
	ErrMergeNotSupported = errors.New("merge required: not supported, resolve manually")
	ErrCurrentBranch     = errors.New("branch is checked out")
	ErrBranchExists      = errors.New("branch already exists")
)

// commandError carries the stderr detail of a failed git invocation while
// remaining matchable against one of the sentinel kinds above.
type commandError struct {
	kind   error
	detail string
}

func (e *commandError) Error() string {
	if e.detail == "" {
		return e.kind.Error()
	}
	return fmt.Sprintf("%v: %s", e.kind, e.detail)
}

func (e *commandError) Unwrap() error {
	return e.kind
}

func wrapKind(kind error, detail string) error {
	return &commandError{kind: kind, detail: strings.TrimSpace(detail)}
}

// classifyRemoteError maps stderr from pull/push to a failure kind.
// Pull runs with --ff-only so a refused merge shows up as a fatal
// "not possible to fast-forward" or divergence message.
func classifyRemoteError(stderr string, push bool) error {
	s := strings.ToLower(stderr)
	switch {
	case strings.Contains(s, "does not appear to be a git repository"),
		strings.Contains(s, "no such remote"),
		strings.Contains(s, "'origin' does not appear"),
		strings.Contains(s, "could not read from remote repository") && strings.Contains(s, "origin"):
		return wrapKind(ErrNoRemote, stderr)
	case strings.Contains(s, "authentication failed"),
		strings.Contains(s, "permission denied"),
		strings.Contains(s, "could not read username"),
		strings.Contains(s, "invalid credentials"):
		return wrapKind(ErrAuthFailed, stderr)
	}
	if push {
		if strings.Contains(s, "non-fast-forward") || strings.Contains(s, "[rejected]") ||
			strings.Contains(s, "fetch first") || strings.Contains(s, "failed to push some refs") {
			return wrapKind(ErrNonFastForward, stderr)
		}
	} else {
		if strings.Contains(s, "not possible to fast-forward") ||
			strings.Contains(s, "diverg") ||
			strings.Contains(s, "conflict") ||
			strings.Contains(s, "need to specify how to reconcile") {
			return wrapKind(ErrMergeNotSupported, stderr)
		}
	}
	return fmt.Errorf("git: %s", strings.TrimSpace(stderr))
}
