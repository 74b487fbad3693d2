package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, " ", StatusUnmodified.String())
	assert.Equal(t, "A", StatusAdded.String())
	assert.Equal(t, "M", StatusModified.String())
	assert.Equal(t, "D", StatusDeleted.String())
	assert.Equal(t, "?", StatusUntracked.String())
}

func TestFileEntryDirty(t *testing.T) {
	assert.False(t, FileEntry{Path: "clean.go"}.Dirty())
	assert.True(t, FileEntry{Path: "a.go", Staged: StatusAdded}.Dirty())
	assert.True(t, FileEntry{Path: "b.go", Unstaged: StatusUntracked}.Dirty())
}

func TestShortHash(t *testing.T) {
	c := CommitRecord{Hash: "0123456789abcdef0123456789abcdef01234567"}
	assert.Equal(t, "0123456", c.ShortHash())

	short := CommitRecord{Hash: "abc"}
	assert.Equal(t, "abc", short.ShortHash())
}

func TestDiffViewEmptyAndLineCount(t *testing.T) {
	var nilView *DiffView
	assert.True(t, nilView.Empty())
	assert.Equal(t, 0, nilView.LineCount())

	view := &DiffView{}
	assert.True(t, view.Empty())

	view.Hunks = []Hunk{
		{Header: "@@ -1 +1 @@", Lines: []DiffLine{{Kind: LineAdded, Text: "x"}}},
		{Header: "@@ -5 +5 @@", Lines: []DiffLine{{Kind: LineRemoved, Text: "y"}, {Kind: LineContext, Text: "z"}}},
	}
	assert.False(t, view.Empty())
	assert.Equal(t, 5, view.LineCount())
}
