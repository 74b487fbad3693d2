package app

// The refresh pipeline re-derives one view's cached list from the
// repository. Lists are replaced atomically: the old list stays visible
// until the new one is fully fetched, and nothing is replaced when the
// fetch fails. It runs exactly once per successful mutation and once per
// explicit Refresh; read-only navigation never triggers it.

import (
	"context"
)

// refreshView re-fetches the list the view addresses, clamps the view's
// selection, and for Files recomputes the diff cache for the new
// selection (or clears it when the list is empty).
func (e *Executor) refreshView(ctx context.Context, v View) error {
	s := e.state

	switch v {
	case ViewHistory:
		commits, err := e.repo.History(ctx, e.historyLimit)
		if err != nil {
			return err
		}
		s.Commits = commits
		s.ClampSelection(ViewHistory)

	case ViewBranches:
		branches, err := e.repo.Branches(ctx)
		if err != nil {
			return err
		}
		s.Branches = branches
		s.ClampSelection(ViewBranches)

	default:
		files, err := e.repo.Status(ctx)
		if err != nil {
			return err
		}
		s.Files = files
		s.ClampSelection(ViewFiles)
		s.Diff = nil
		if len(s.Files) > 0 {
			e.loadSelectedDiff(ctx)
		}
	}
	return nil
}

// RefreshAll populates every cached list. Used once at startup so view
// switches afterwards are pure navigation.
func (e *Executor) RefreshAll(ctx context.Context) error {
	if err := e.refreshView(ctx, ViewBranches); err != nil {
		return err
	}
	if err := e.refreshView(ctx, ViewHistory); err != nil {
		return err
	}
	return e.refreshView(ctx, ViewFiles)
}
