package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmouel/lazystage/internal/models"
)

func TestClampSelection(t *testing.T) {
	s := NewAppState()
	s.Files = []models.FileEntry{{Path: "a"}, {Path: "b"}, {Path: "c"}}

	s.SetSelection(ViewFiles, 7)
	assert.Equal(t, 2, s.ClampSelection(ViewFiles))

	s.SetSelection(ViewFiles, -3)
	assert.Equal(t, 0, s.ClampSelection(ViewFiles))

	s.Files = nil
	s.SetSelection(ViewFiles, 1)
	assert.Equal(t, 0, s.ClampSelection(ViewFiles))
}

func TestSelectionIsPerView(t *testing.T) {
	s := NewAppState()
	s.Files = []models.FileEntry{{Path: "a"}, {Path: "b"}}
	s.Branches = []models.BranchRecord{{Name: "main"}, {Name: "dev"}, {Name: "feat"}}

	s.SetSelection(ViewFiles, 1)
	s.SetSelection(ViewBranches, 2)

	assert.Equal(t, 1, s.Selection(ViewFiles))
	assert.Equal(t, 2, s.Selection(ViewBranches))
	assert.Equal(t, 0, s.Selection(ViewHistory))
}

func TestSelectedAccessors(t *testing.T) {
	s := NewAppState()

	_, ok := s.SelectedFile()
	assert.False(t, ok)
	_, ok = s.SelectedBranch()
	assert.False(t, ok)
	_, ok = s.SelectedCommit()
	assert.False(t, ok)

	s.Files = []models.FileEntry{{Path: "x.go"}}
	entry, ok := s.SelectedFile()
	assert.True(t, ok)
	assert.Equal(t, "x.go", entry.Path)
}

func TestHasStaged(t *testing.T) {
	s := NewAppState()
	s.Files = []models.FileEntry{
		{Path: "a", Unstaged: models.StatusModified},
	}
	assert.False(t, s.HasStaged())

	s.Files = append(s.Files, models.FileEntry{Path: "b", Staged: models.StatusAdded})
	assert.True(t, s.HasStaged())
}

func TestCurrentBranchName(t *testing.T) {
	s := NewAppState()
	assert.Equal(t, "", s.CurrentBranchName())

	s.Branches = []models.BranchRecord{
		{Name: "dev"},
		{Name: "main", IsCurrent: true},
	}
	assert.Equal(t, "main", s.CurrentBranchName())
}

func TestCloseOverlayClearsBuffers(t *testing.T) {
	s := NewAppState()
	s.Overlay = OverlayCommit
	s.CommitBuffer = "wip"
	s.BranchBuffer = "feat"
	s.DeleteTarget = "old"

	s.CloseOverlay()

	assert.Equal(t, OverlayNone, s.Overlay)
	assert.Empty(t, s.CommitBuffer)
	assert.Empty(t, s.BranchBuffer)
	assert.Empty(t, s.DeleteTarget)
}

func TestViewString(t *testing.T) {
	assert.Equal(t, "Files", ViewFiles.String())
	assert.Equal(t, "History", ViewHistory.String())
	assert.Equal(t, "Branches", ViewBranches.String())
}
