package app

import (
	"github.com/chmouel/lazystage/internal/models"
)

// View identifies which list the selection addresses.
type View int

// The three base views.
const (
	ViewFiles View = iota
	ViewHistory
	ViewBranches
)

// String returns the view's display name.
func (v View) String() string {
	switch v {
	case ViewHistory:
		return "History"
	case ViewBranches:
		return "Branches"
	default:
		return "Files"
	}
}

// Overlay identifies the active modal input mode, if any. The commit
// dialog is only reachable from Files, the branch dialogs from Branches.
type Overlay int

// Overlay states.
const (
	OverlayNone Overlay = iota
	OverlayCommit
	OverlayBranchNew
	OverlayBranchDelete
)

// AppState is the view model owned by the state store. The command
// executor borrows it per command; nothing else mutates it.
type AppState struct {
	ActiveView View
	Overlay    Overlay

	Files    []models.FileEntry
	Commits  []models.CommitRecord
	Branches []models.BranchRecord

	// Diff corresponds to Files[selected] whenever ActiveView is Files;
	// nil whenever the selection or the file list changed and no diff
	// has been recomputed yet, or the list is empty.
	Diff *models.DiffView

	StatusMessage string

	// CommitBuffer holds in-progress commit message text while
	// OverlayCommit is active; BranchBuffer likewise for OverlayBranchNew.
	CommitBuffer string
	BranchBuffer string
	DeleteTarget string

	Quitting bool

	selected map[View]int
}

// NewAppState returns the initial state: Files view, no overlay.
func NewAppState() *AppState {
	return &AppState{
		ActiveView: ViewFiles,
		selected:   make(map[View]int),
	}
}

// ListLen returns the length of the list the given view addresses.
func (s *AppState) ListLen(v View) int {
	switch v {
	case ViewHistory:
		return len(s.Commits)
	case ViewBranches:
		return len(s.Branches)
	default:
		return len(s.Files)
	}
}

// Selection returns the selection index for the view, 0 when unset.
func (s *AppState) Selection(v View) int {
	return s.selected[v]
}

// SetSelection stores the selection index for the view without clamping.
func (s *AppState) SetSelection(v View, idx int) {
	s.selected[v] = idx
}

// ClampSelection forces the view's selection into [0, len) and returns
// the resulting index. An empty list resets the selection to 0.
func (s *AppState) ClampSelection(v View) int {
	n := s.ListLen(v)
	idx := s.selected[v]
	switch {
	case n == 0:
		idx = 0
	case idx >= n:
		idx = n - 1
	case idx < 0:
		idx = 0
	}
	s.selected[v] = idx
	return idx
}

// SelectedFile returns the file under the cursor in the Files view.
func (s *AppState) SelectedFile() (models.FileEntry, bool) {
	idx := s.Selection(ViewFiles)
	if idx < 0 || idx >= len(s.Files) {
		return models.FileEntry{}, false
	}
	return s.Files[idx], true
}

// SelectedBranch returns the branch under the cursor in the Branches view.
func (s *AppState) SelectedBranch() (models.BranchRecord, bool) {
	idx := s.Selection(ViewBranches)
	if idx < 0 || idx >= len(s.Branches) {
		return models.BranchRecord{}, false
	}
	return s.Branches[idx], true
}

// SelectedCommit returns the commit under the cursor in the History view.
func (s *AppState) SelectedCommit() (models.CommitRecord, bool) {
	idx := s.Selection(ViewHistory)
	if idx < 0 || idx >= len(s.Commits) {
		return models.CommitRecord{}, false
	}
	return s.Commits[idx], true
}

// HasStaged reports whether any entry in the file list has a staged change.
func (s *AppState) HasStaged() bool {
	for _, f := range s.Files {
		if f.Staged != models.StatusUnmodified {
			return true
		}
	}
	return false
}

// CurrentBranchName returns the name of the branch marked current.
func (s *AppState) CurrentBranchName() string {
	for _, b := range s.Branches {
		if b.IsCurrent {
			return b.Name
		}
	}
	return ""
}

// CloseOverlay clears the overlay and any in-progress dialog buffers.
func (s *AppState) CloseOverlay() {
	s.Overlay = OverlayNone
	s.CommitBuffer = ""
	s.BranchBuffer = ""
	s.DeleteTarget = ""
}
