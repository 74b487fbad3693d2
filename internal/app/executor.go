package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chmouel/lazystage/internal/git"
	log "github.com/chmouel/lazystage/internal/log"
	"github.com/chmouel/lazystage/internal/models"
)

// Executor mediates every command against the repository. It validates
// preconditions against the current state, performs the repository call,
// updates the status message, and triggers the refresh pipeline on
// success. It is the only component that calls mutating repository
// operations, and it never retains the state between calls beyond the
// pointer it was constructed with.
type Executor struct {
	repo         *git.Repo
	state        *AppState
	historyLimit int
}

// NewExecutor wires the executor to one repository and one state store.
func NewExecutor(repo *git.Repo, state *AppState, historyLimit int) *Executor {
	if historyLimit <= 0 {
		historyLimit = 100
	}
	return &Executor{repo: repo, state: state, historyLimit: historyLimit}
}

// Apply executes one command synchronously. Repository failures never
// propagate: they become the status message and leave the state exactly
// as it was before the command.
func (e *Executor) Apply(ctx context.Context, cmd Command) {
	s := e.state

	switch c := cmd.(type) {
	case Quit:
		s.Quitting = true

	case SwitchView:
		s.ActiveView = c.Target
		s.CloseOverlay()

	case MoveSelection:
		e.moveSelection(ctx, c.Delta)

	case Refresh:
		if err := e.refreshView(ctx, s.ActiveView); err != nil {
			s.StatusMessage = statusFromError(err)
			return
		}
		s.StatusMessage = "Refreshed"

	case Stage:
		entry, ok := s.SelectedFile()
		if !ok || s.ActiveView != ViewFiles {
			s.StatusMessage = "No file selected"
			return
		}
		if entry.Unstaged == models.StatusUnmodified {
			s.StatusMessage = fmt.Sprintf("Nothing to stage for %s", entry.Path)
			return
		}
		e.mutate(ctx, ViewFiles, fmt.Sprintf("Staged %s", entry.Path), func() error {
			return e.repo.Stage(ctx, entry.Path)
		})

	case StageAll:
		if s.ActiveView != ViewFiles {
			s.StatusMessage = "Switch to the Files view to stage"
			return
		}
		e.mutate(ctx, ViewFiles, "Staged all changes", func() error {
			return e.repo.StageAll(ctx)
		})

	case Discard:
		entry, ok := s.SelectedFile()
		if !ok || s.ActiveView != ViewFiles {
			s.StatusMessage = "No file selected"
			return
		}
		if !entry.Dirty() {
			s.StatusMessage = fmt.Sprintf("Nothing to discard for %s", entry.Path)
			return
		}
		e.mutate(ctx, ViewFiles, fmt.Sprintf("Discarded changes to %s", entry.Path), func() error {
			return e.repo.Discard(ctx, entry.Path)
		})

	case DiscardAll:
		if s.ActiveView != ViewFiles {
			s.StatusMessage = "Switch to the Files view to discard"
			return
		}
		if len(s.Files) == 0 {
			s.StatusMessage = "Nothing to discard"
			return
		}
		e.mutate(ctx, ViewFiles, "Discarded all changes", func() error {
			return e.repo.DiscardAll(ctx)
		})

	case OpenCommitDialog:
		if s.ActiveView != ViewFiles {
			s.StatusMessage = "Switch to the Files view to commit"
			return
		}
		if !s.HasStaged() {
			s.StatusMessage = "Nothing staged; stage files before committing"
			return
		}
		s.Overlay = OverlayCommit
		s.CommitBuffer = ""

	case CancelCommitDialog:
		s.CloseOverlay()
		s.StatusMessage = "Commit cancelled"

	case CommitWith:
		if strings.TrimSpace(c.Text) == "" {
			s.StatusMessage = statusFromError(git.ErrEmptyMessage)
			return
		}
		if !s.HasStaged() {
			s.StatusMessage = statusFromError(git.ErrNothingStaged)
			return
		}
		hash, err := e.repo.Commit(ctx, c.Text)
		if err != nil {
			s.StatusMessage = statusFromError(err)
			return
		}
		s.CloseOverlay()
		if err := e.refreshView(ctx, ViewFiles); err != nil {
			s.StatusMessage = statusFromError(err)
			return
		}
		s.StatusMessage = fmt.Sprintf("Committed %.7s", hash)

	case Checkout:
		branch, ok := s.SelectedBranch()
		if !ok || s.ActiveView != ViewBranches {
			s.StatusMessage = "No branch selected"
			return
		}
		if branch.IsCurrent {
			s.StatusMessage = fmt.Sprintf("Already on %s", branch.Name)
			return
		}
		if err := e.repo.Checkout(ctx, branch.Name); err != nil {
			s.StatusMessage = statusFromError(err)
			return
		}
		// The worktree changed underneath the Files view too.
		if err := e.refreshView(ctx, ViewBranches); err != nil {
			s.StatusMessage = statusFromError(err)
			return
		}
		if err := e.refreshView(ctx, ViewFiles); err != nil {
			s.StatusMessage = statusFromError(err)
			return
		}
		s.StatusMessage = fmt.Sprintf("Checked out %s", branch.Name)

	case OpenBranchDialog:
		if s.ActiveView != ViewBranches {
			s.StatusMessage = "Switch to the Branches view to create a branch"
			return
		}
		s.Overlay = OverlayBranchNew
		s.BranchBuffer = ""

	case CancelBranchDialog:
		s.CloseOverlay()

	case CreateBranchWith:
		e.createBranch(ctx, c.Name)

	case RequestDeleteBranch:
		branch, ok := s.SelectedBranch()
		if !ok || s.ActiveView != ViewBranches {
			s.StatusMessage = "No branch selected"
			return
		}
		if branch.IsCurrent {
			s.StatusMessage = "Cannot delete the current branch"
			return
		}
		s.Overlay = OverlayBranchDelete
		s.DeleteTarget = branch.Name

	case CancelDeleteBranch:
		s.CloseOverlay()
		s.StatusMessage = "Delete cancelled"

	case ConfirmDeleteBranch:
		name := s.DeleteTarget
		if name == "" {
			s.CloseOverlay()
			return
		}
		if err := e.repo.DeleteBranch(ctx, name); err != nil {
			s.StatusMessage = statusFromError(err)
			return
		}
		s.CloseOverlay()
		if err := e.refreshView(ctx, ViewBranches); err != nil {
			s.StatusMessage = statusFromError(err)
			return
		}
		s.StatusMessage = fmt.Sprintf("Deleted branch %s", name)

	case Pull:
		e.remoteOp(ctx, "Pulled from origin", e.repo.Pull)

	case Push:
		e.remoteOp(ctx, "Pushed to origin", e.repo.Push)

	case Sync:
		e.remoteOp(ctx, "Synced with origin", e.repo.Sync)

	default:
		log.Printf("executor: unhandled command %T", cmd)
	}
}

// mutate runs a repository write, refreshes the given view on success,
// and reports either the success message or the failure kind.
func (e *Executor) mutate(ctx context.Context, view View, success string, op func() error) {
	if err := op(); err != nil {
		e.state.StatusMessage = statusFromError(err)
		return
	}
	if err := e.refreshView(ctx, view); err != nil {
		e.state.StatusMessage = statusFromError(err)
		return
	}
	e.state.StatusMessage = success
}

func (e *Executor) remoteOp(ctx context.Context, success string, op func(context.Context) error) {
	if err := op(ctx); err != nil {
		e.state.StatusMessage = statusFromError(err)
		return
	}
	if err := e.refreshView(ctx, e.state.ActiveView); err != nil {
		e.state.StatusMessage = statusFromError(err)
		return
	}
	e.state.StatusMessage = success
}

func (e *Executor) createBranch(ctx context.Context, name string) {
	s := e.state
	name = strings.TrimSpace(name)
	if name == "" {
		s.StatusMessage = "Branch name is empty"
		return
	}
	base := s.CurrentBranchName()
	if err := e.repo.CreateBranch(ctx, name, base); err != nil {
		s.StatusMessage = statusFromError(err)
		return
	}
	s.CloseOverlay()

	// Best effort: publish the branch when a remote exists, the way the
	// checkout flow of most forges expects it.
	msg := fmt.Sprintf("Created branch %s", name)
	if e.repo.HasOrigin(ctx) {
		if err := e.repo.PushBranch(ctx, name); err != nil {
			msg = fmt.Sprintf("Created %s locally; push failed: %s", name, statusFromError(err))
		} else {
			msg = fmt.Sprintf("Created and pushed branch %s", name)
		}
	}
	if err := e.refreshView(ctx, ViewBranches); err != nil {
		s.StatusMessage = statusFromError(err)
		return
	}
	s.StatusMessage = msg
}

// moveSelection is read-only navigation: it never triggers the refresh
// pipeline, but it does re-derive the diff cache for the Files view.
func (e *Executor) moveSelection(ctx context.Context, delta int) {
	s := e.state
	v := s.ActiveView
	n := s.ListLen(v)
	if n == 0 {
		return
	}
	idx := s.Selection(v) + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	if idx == s.Selection(v) {
		return
	}
	s.SetSelection(v, idx)
	if v == ViewFiles {
		s.Diff = nil
		e.loadSelectedDiff(ctx)
	}
}

// loadSelectedDiff recomputes the diff cache for the Files selection.
func (e *Executor) loadSelectedDiff(ctx context.Context) {
	s := e.state
	entry, ok := s.SelectedFile()
	if !ok {
		s.Diff = nil
		return
	}
	staged := entry.Unstaged == models.StatusUnmodified
	diff, err := e.repo.Diff(ctx, entry.Path, staged)
	if err != nil {
		s.Diff = nil
		s.StatusMessage = statusFromError(err)
		return
	}
	s.Diff = diff
}

// statusFromError renders a failure kind as a one-line status message.
func statusFromError(err error) string {
	switch {
	case errors.Is(err, git.ErrEmptyMessage):
		return "Commit message is empty"
	case errors.Is(err, git.ErrNothingStaged):
		return "Nothing staged to commit"
	case errors.Is(err, git.ErrNoSuchPath):
		return "No such path in the worktree"
	case errors.Is(err, git.ErrNoSuchBranch):
		return "No such branch"
	case errors.Is(err, git.ErrBranchExists):
		return "Branch already exists"
	case errors.Is(err, git.ErrCurrentBranch):
		return "Branch is currently checked out"
	case errors.Is(err, git.ErrDirtyWorktree):
		return "Checkout blocked: uncommitted changes in the worktree"
	case errors.Is(err, git.ErrNoRemote):
		return "No remote named origin is configured"
	case errors.Is(err, git.ErrAuthFailed):
		return "Authentication to origin failed"
	case errors.Is(err, git.ErrNonFastForward):
		return "Push rejected: remote has newer commits, pull first"
	case errors.Is(err, git.ErrMergeNotSupported):
		return "Pull needs a merge: not supported, resolve on the command line"
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
