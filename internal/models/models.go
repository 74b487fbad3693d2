// Package models defines the data objects shared across lazystage packages.
package models

// Status describes one side (index or worktree) of a file's state.
type Status int

// File status values, mirroring the two columns of git status --porcelain.
const (
	StatusUnmodified Status = iota
	StatusAdded
	StatusModified
	StatusDeleted
	StatusUntracked
)

// String returns the single-letter code used in the Files view.
func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusModified:
		return "M"
	case StatusDeleted:
		return "D"
	case StatusUntracked:
		return "?"
	default:
		return " "
	}
}

// FileEntry represents one path from git status with its index and
// worktree state. An untracked file never carries a staged status.
type FileEntry struct {
	Path     string
	Staged   Status
	Unstaged Status
}

// Dirty reports whether the entry has any pending change.
func (f FileEntry) Dirty() bool {
	return f.Staged != StatusUnmodified || f.Unstaged != StatusUnmodified
}

// CommitRecord summarizes one commit from the log. Immutable once read.
type CommitRecord struct {
	Hash       string
	AuthorName string
	AuthorDate string
	Message    string
}

// ShortHash returns the abbreviated commit hash for display.
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// BranchRecord represents one local branch. Exactly one record in a
// branch list has IsCurrent set.
type BranchRecord struct {
	Name      string
	IsCurrent bool
}
