// Package git wraps git commands and helpers used by lazystage.
package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"sort"
	"strings"

	log "github.com/chmouel/lazystage/internal/log"
	"github.com/chmouel/lazystage/internal/models"
)

// LookupPath is used to find executables in PATH. It's exposed as a package
// variable so tests can mock it and avoid depending on system binaries.
var LookupPath = exec.LookPath

// Repo is the exclusive handle to one on-disk repository. All operations
// are synchronous and run against the worktree root resolved at Open time.
// Nothing else may operate on the same worktree while a Repo is live.
type Repo struct {
	root string
}

// Open resolves the worktree root for path and returns a handle.
// Fails with ErrNotARepository when path is not inside a repository.
func Open(ctx context.Context, path string) (*Repo, error) {
	if _, err := LookupPath("git"); err != nil {
		return nil, fmt.Errorf("git executable not found: %w", err)
	}
	// #nosec G204 -- path comes from the startup argument, not shell interpolated
	cmd := exec.CommandContext(ctx, "git", "-C", path, "rev-parse", "--show-toplevel")
	out, err := cmd.Output()
	if err != nil {
		return nil, wrapKind(ErrNotARepository, path)
	}
	root := strings.TrimSpace(string(out))
	log.Printf("open: %s", root)
	return &Repo{root: root}, nil
}

// Root returns the worktree root directory.
func (r *Repo) Root() string {
	return r.root
}

// GitDir resolves the repository metadata directory, following worktree
// and submodule indirection.
func (r *Repo) GitDir(ctx context.Context) string {
	out, _, err := r.runGit(ctx, []string{"rev-parse", "--absolute-git-dir"}, []int{0})
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// runGit executes a git command in the worktree root. Exit codes listed in
// okReturncodes are treated as success; any other failure returns the
// command's stderr as the error detail.
func (r *Repo) runGit(ctx context.Context, args []string, okReturncodes []int) (string, int, error) {
	log.Printf("run: git %s (cwd=%s)", strings.Join(args, " "), r.root)

	// #nosec G204 -- arguments come from internal logic and are not shell interpolated
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root
	// Never block on a credential prompt; surface the failure instead.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := cmd.Output()
	if err != nil {
		exitError, ok := err.(*exec.ExitError)
		if !ok {
			log.Printf("error: git %s: %v", args[0], err)
			return "", -1, err
		}
		code := exitError.ExitCode()
		if !slices.Contains(okReturncodes, code) {
			stderr := strings.TrimSpace(string(exitError.Stderr))
			log.Printf("error: git %s (exit %d): %s", args[0], code, stderr)
			if stderr == "" {
				stderr = fmt.Sprintf("git %s (exit %d)", args[0], code)
			}
			return string(output), code, fmt.Errorf("%s", stderr)
		}
		return string(output), code, nil
	}
	return string(output), 0, nil
}

// Status returns the worktree state as one entry per path, path-sorted.
func (r *Repo) Status(ctx context.Context) ([]models.FileEntry, error) {
	raw, _, err := r.runGit(ctx, []string{"status", "--porcelain", "--untracked-files=all"}, []int{0})
	if err != nil {
		return nil, fmt.Errorf("status: %w", err)
	}

	entries := parseStatus(raw)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

// parseStatus parses git status --porcelain v1 output.
func parseStatus(raw string) []models.FileEntry {
	var entries []models.FileEntry
	for _, line := range strings.Split(raw, "\n") {
		if len(line) < 4 {
			continue
		}
		x, y := line[0], line[1]
		path := strings.TrimSpace(line[3:])
		// Renames and copies report "old -> new"; track the new path.
		if (x == 'R' || x == 'C') && strings.Contains(path, " -> ") {
			parts := strings.SplitN(path, " -> ", 2)
			path = parts[1]
		}
		path = strings.Trim(path, `"`)

		if x == '?' && y == '?' {
			entries = append(entries, models.FileEntry{
				Path:     path,
				Staged:   models.StatusUnmodified,
				Unstaged: models.StatusUntracked,
			})
			continue
		}
		entries = append(entries, models.FileEntry{
			Path:     path,
			Staged:   statusFromCode(x),
			Unstaged: statusFromCode(y),
		})
	}
	return entries
}

func statusFromCode(c byte) models.Status {
	switch c {
	case 'A':
		return models.StatusAdded
	case 'M', 'R', 'C', 'T', 'U':
		return models.StatusModified
	case 'D':
		return models.StatusDeleted
	default:
		return models.StatusUnmodified
	}
}

func (r *Repo) findEntry(ctx context.Context, path string) (models.FileEntry, error) {
	entries, err := r.Status(ctx)
	if err != nil {
		return models.FileEntry{}, err
	}
	for _, e := range entries {
		if e.Path == path {
			return e, nil
		}
	}
	return models.FileEntry{}, wrapKind(ErrNoSuchPath, path)
}

// Diff returns the parsed diff for one file, staged or unstaged side.
// Untracked files are rendered as an all-added diff against /dev/null.
func (r *Repo) Diff(ctx context.Context, path string, staged bool) (*models.DiffView, error) {
	entry, err := r.findEntry(ctx, path)
	if err != nil {
		return nil, err
	}

	var raw string
	switch {
	case !staged && entry.Unstaged == models.StatusUntracked:
		// git diff --no-index exits 1 when the files differ.
		raw, _, err = r.runGit(ctx, []string{"diff", "--no-color", "--no-index", "--", os.DevNull, path}, []int{0, 1})
	case staged:
		raw, _, err = r.runGit(ctx, []string{"diff", "--no-color", "--cached", "--", path}, []int{0})
	default:
		raw, _, err = r.runGit(ctx, []string{"diff", "--no-color", "--", path}, []int{0})
	}
	if err != nil {
		return nil, fmt.Errorf("diff %s: %w", path, err)
	}

	view := ParseDiff(raw)
	view.Path = path
	view.Staged = staged
	return view, nil
}

// Stage adds the file's current worktree content to the index.
// Staging an already-staged file is a no-op, matching git add.
func (r *Repo) Stage(ctx context.Context, path string) error {
	if _, err := r.findEntry(ctx, path); err != nil {
		return err
	}
	if _, _, err := r.runGit(ctx, []string{"add", "--", path}, []int{0}); err != nil {
		if strings.Contains(err.Error(), "did not match any files") {
			return wrapKind(ErrNoSuchPath, path)
		}
		return fmt.Errorf("stage %s: %w", path, err)
	}
	return nil
}

// StageAll stages every change in the worktree, deletions included.
func (r *Repo) StageAll(ctx context.Context) error {
	if _, _, err := r.runGit(ctx, []string{"add", "-A"}, []int{0}); err != nil {
		return fmt.Errorf("stage all: %w", err)
	}
	return nil
}

// Discard drops all uncommitted changes for one path: the index entry, the
// worktree modification, and for untracked or freshly added files the file
// itself.
func (r *Repo) Discard(ctx context.Context, path string) error {
	entry, err := r.findEntry(ctx, path)
	if err != nil {
		return err
	}

	if entry.Unstaged == models.StatusUntracked {
		_, _, err = r.runGit(ctx, []string{"clean", "-f", "--", path}, []int{0})
		if err != nil {
			return fmt.Errorf("discard %s: %w", path, err)
		}
		return nil
	}

	if _, _, err = r.runGit(ctx, []string{"reset", "-q", "--", path}, []int{0, 1}); err != nil {
		return fmt.Errorf("discard %s: %w", path, err)
	}
	if entry.Staged == models.StatusAdded {
		// Was never committed; after unstaging it is untracked again.
		if _, _, err = r.runGit(ctx, []string{"clean", "-f", "--", path}, []int{0}); err != nil {
			return fmt.Errorf("discard %s: %w", path, err)
		}
		return nil
	}
	if _, _, err = r.runGit(ctx, []string{"checkout", "-q", "--", path}, []int{0}); err != nil {
		return fmt.Errorf("discard %s: %w", path, err)
	}
	return nil
}

// DiscardAll drops every uncommitted change and removes untracked files.
func (r *Repo) DiscardAll(ctx context.Context) error {
	if _, _, err := r.runGit(ctx, []string{"reset", "-q"}, []int{0, 1}); err != nil {
		return fmt.Errorf("discard all: %w", err)
	}
	if _, _, err := r.runGit(ctx, []string{"checkout", "-q", "--", "."}, []int{0, 1}); err != nil {
		return fmt.Errorf("discard all: %w", err)
	}
	if _, _, err := r.runGit(ctx, []string{"clean", "-fd"}, []int{0}); err != nil {
		return fmt.Errorf("discard all: %w", err)
	}
	return nil
}

// HasStagedChanges reports whether the index differs from HEAD.
func (r *Repo) HasStagedChanges(ctx context.Context) (bool, error) {
	// Exit 1 means differences exist. In a repo without commits HEAD is
	// unborn, so fall back to checking the index listing.
	_, code, err := r.runGit(ctx, []string{"diff", "--cached", "--quiet"}, []int{0, 1})
	if err != nil {
		out, _, lsErr := r.runGit(ctx, []string{"ls-files", "--cached"}, []int{0})
		if lsErr != nil {
			return false, fmt.Errorf("staged check: %w", err)
		}
		return strings.TrimSpace(out) != "", nil
	}
	return code == 1, nil
}

// Commit records the staged changes. Fails with ErrEmptyMessage for blank
// messages and ErrNothingStaged when the index is clean. Returns the new
// commit hash.
func (r *Repo) Commit(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}
	staged, err := r.HasStagedChanges(ctx)
	if err != nil {
		return "", err
	}
	if !staged {
		return "", ErrNothingStaged
	}
	if _, _, err := r.runGit(ctx, []string{"commit", "-m", message}, []int{0}); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	hash, _, err := r.runGit(ctx, []string{"rev-parse", "HEAD"}, []int{0})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return strings.TrimSpace(hash), nil
}

// CurrentBranch returns the checked-out branch name, empty when detached.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	out, _, err := r.runGit(ctx, []string{"branch", "--show-current"}, []int{0})
	if err != nil {
		return "", fmt.Errorf("current branch: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Branches lists local branches, name-sorted, with the current one marked.
func (r *Repo) Branches(ctx context.Context) ([]models.BranchRecord, error) {
	current, err := r.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	out, _, err := r.runGit(ctx, []string{"for-each-ref", "--format=%(refname:short)", "refs/heads"}, []int{0})
	if err != nil {
		return nil, fmt.Errorf("branches: %w", err)
	}

	var branches []models.BranchRecord
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		branches = append(branches, models.BranchRecord{
			Name:      name,
			IsCurrent: name == current,
		})
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i].Name < branches[j].Name })
	return branches, nil
}

func (r *Repo) branchExists(ctx context.Context, name string) bool {
	_, code, err := r.runGit(ctx, []string{"show-ref", "--verify", "--quiet", "refs/heads/" + name}, []int{0, 1})
	return err == nil && code == 0
}

// Checkout switches to the named branch. Conservative guard: any
// uncommitted change blocks the switch with ErrDirtyWorktree.
func (r *Repo) Checkout(ctx context.Context, name string) error {
	if !r.branchExists(ctx, name) {
		return wrapKind(ErrNoSuchBranch, name)
	}
	entries, err := r.Status(ctx)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return wrapKind(ErrDirtyWorktree, fmt.Sprintf("%d changed files", len(entries)))
	}
	if _, _, err := r.runGit(ctx, []string{"checkout", "-q", name}, []int{0}); err != nil {
		return fmt.Errorf("checkout %s: %w", name, err)
	}
	return nil
}

// CreateBranch creates a branch off base without switching to it.
func (r *Repo) CreateBranch(ctx context.Context, name, base string) error {
	if r.branchExists(ctx, name) {
		return wrapKind(ErrBranchExists, name)
	}
	if base != "" && !r.branchExists(ctx, base) {
		return wrapKind(ErrNoSuchBranch, base)
	}
	args := []string{"branch", name}
	if base != "" {
		args = append(args, base)
	}
	if _, _, err := r.runGit(ctx, args, []int{0}); err != nil {
		return fmt.Errorf("create branch %s: %w", name, err)
	}
	return nil
}

// DeleteBranch force-deletes a local branch. The current branch is refused.
func (r *Repo) DeleteBranch(ctx context.Context, name string) error {
	if !r.branchExists(ctx, name) {
		return wrapKind(ErrNoSuchBranch, name)
	}
	current, err := r.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if name == current {
		return wrapKind(ErrCurrentBranch, name)
	}
	if _, _, err := r.runGit(ctx, []string{"branch", "-D", name}, []int{0}); err != nil {
		return fmt.Errorf("delete branch %s: %w", name, err)
	}
	return nil
}

// History returns up to limit commits, newest first. An unborn HEAD
// yields an empty list rather than an error.
func (r *Repo) History(ctx context.Context, limit int) ([]models.CommitRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	out, _, err := r.runGit(ctx, []string{
		"log", "-n", fmt.Sprintf("%d", limit),
		"--pretty=format:%H%x09%an%x09%ad%x09%s",
		"--date=format:%Y-%m-%d %H:%M:%S",
	}, []int{0})
	if err != nil {
		if strings.Contains(err.Error(), "does not have any commits yet") ||
			strings.Contains(err.Error(), "unknown revision") {
			return []models.CommitRecord{}, nil
		}
		return nil, fmt.Errorf("history: %w", err)
	}

	var commits []models.CommitRecord
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "\t", 4)
		if len(parts) != 4 {
			continue
		}
		commits = append(commits, models.CommitRecord{
			Hash:       parts[0],
			AuthorName: parts[1],
			AuthorDate: parts[2],
			Message:    parts[3],
		})
	}
	return commits, nil
}

// HasOrigin reports whether a remote named origin is configured.
func (r *Repo) HasOrigin(ctx context.Context) bool {
	_, code, err := r.runGit(ctx, []string{"remote", "get-url", "origin"}, []int{0, 2, 128})
	return err == nil && code == 0
}

// Pull fast-forwards the current branch from origin. Pulls that would need
// a merge fail with ErrMergeNotSupported and are never auto-resolved.
func (r *Repo) Pull(ctx context.Context) error {
	if !r.HasOrigin(ctx) {
		return ErrNoRemote
	}
	if _, _, err := r.runGit(ctx, []string{"pull", "--ff-only", "origin"}, []int{0}); err != nil {
		return classifyRemoteError(err.Error(), false)
	}
	return nil
}

// Push sends the current branch to origin.
func (r *Repo) Push(ctx context.Context) error {
	if !r.HasOrigin(ctx) {
		return ErrNoRemote
	}
	if _, _, err := r.runGit(ctx, []string{"push", "origin", "HEAD"}, []int{0}); err != nil {
		return classifyRemoteError(err.Error(), true)
	}
	return nil
}

// PushBranch pushes a specific branch and sets its upstream.
func (r *Repo) PushBranch(ctx context.Context, name string) error {
	if !r.HasOrigin(ctx) {
		return ErrNoRemote
	}
	if _, _, err := r.runGit(ctx, []string{"push", "-u", "origin", name}, []int{0}); err != nil {
		return classifyRemoteError(err.Error(), true)
	}
	return nil
}

// Sync pulls and, only if the pull succeeded, pushes.
func (r *Repo) Sync(ctx context.Context) error {
	if err := r.Pull(ctx); err != nil {
		return err
	}
	return r.Push(ctx)
}
