package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazystage/internal/config"
	"github.com/chmouel/lazystage/internal/git"
)

func newTestModel(t *testing.T) (string, *Model) {
	t.Helper()

	dir, repo := newTestRepo(t)
	cfg := config.DefaultConfig()
	cfg.RepoPath = dir
	cfg.ShowIcons = false
	cfg.AutoRefresh = false
	m := NewModel(cfg, repo)
	t.Cleanup(m.Close)
	return dir, m
}

func TestModelInitialLoad(t *testing.T) {
	dir, m := newTestModel(t)

	writeFile(t, dir, "pending.go", "package main\n")

	state := m.State()
	assert.Equal(t, ViewFiles, state.ActiveView)
	// The file written after construction is invisible until a refresh.
	assert.Empty(t, state.Files)
	require.Len(t, state.Commits, 1)
	require.Len(t, state.Branches, 1)
	assert.Equal(t, "main", state.CurrentBranchName())
}

func TestQuitKey(t *testing.T) {
	_, m := newTestModel(t)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))
	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	assert.True(t, fm.State().Quitting)
}

func TestViewSwitchKeys(t *testing.T) {
	_, m := newTestModel(t)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))
	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	time.Sleep(50 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	time.Sleep(50 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	assert.Equal(t, ViewBranches, fm.State().ActiveView)
}

func TestStageAndCommitThroughKeys(t *testing.T) {
	dir, m := newTestModel(t)

	writeFile(t, dir, "feature.go", "package main\n")

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))
	time.Sleep(100 * time.Millisecond)

	// Pick up the new file, stage it, then commit through the dialog.
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	time.Sleep(50 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	time.Sleep(50 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	time.Sleep(50 * time.Millisecond)
	tm.Type("add feature")
	time.Sleep(50 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	fm, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	state := fm.State()
	assert.Equal(t, OverlayNone, state.Overlay)
	assert.Empty(t, state.Files)
	assert.Contains(t, state.StatusMessage, "Committed ")

	repo, err := git.Open(t.Context(), dir)
	require.NoError(t, err)
	commits, err := repo.History(t.Context(), 10)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "add feature", commits[0].Message)
}

func TestCommitDialogEscape(t *testing.T) {
	dir, m := newTestModel(t)

	writeFile(t, dir, "feature.go", "package main\n")

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(120, 40))
	time.Sleep(100 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	time.Sleep(50 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	time.Sleep(50 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	time.Sleep(50 * time.Millisecond)
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	time.Sleep(50 * time.Millisecond)

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	fm, ok := tm.FinalModel(t).(*Model)
	require.True(t, ok)
	state := fm.State()
	assert.Equal(t, OverlayNone, state.Overlay)
	// The staged file is still waiting to be committed.
	require.Len(t, state.Files, 1)
}
