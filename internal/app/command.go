package app

// Command is one decoded user action, handed to the executor by the
// input layer. The executor validates preconditions against the current
// state before touching the repository.
type Command interface {
	isCommand()
}

// SwitchView moves between the three base views, closing any overlay.
type SwitchView struct{ Target View }

// MoveSelection moves the cursor of the active view by Delta.
type MoveSelection struct{ Delta int }

// Stage stages the selected file.
type Stage struct{}

// StageAll stages every pending change.
type StageAll struct{}

// Discard drops all uncommitted changes of the selected file.
type Discard struct{}

// DiscardAll drops every uncommitted change in the worktree.
type DiscardAll struct{}

// OpenCommitDialog activates the commit message overlay.
type OpenCommitDialog struct{}

// CommitWith records the staged changes with the given message.
type CommitWith struct{ Text string }

// CancelCommitDialog closes the commit overlay without committing.
type CancelCommitDialog struct{}

// Checkout switches to the selected branch.
type Checkout struct{}

// OpenBranchDialog activates the new-branch name overlay.
type OpenBranchDialog struct{}

// CreateBranchWith creates a branch off the current one and pushes it
// when origin is configured.
type CreateBranchWith struct{ Name string }

// CancelBranchDialog closes the new-branch overlay.
type CancelBranchDialog struct{}

// RequestDeleteBranch opens the delete confirmation for the selected branch.
type RequestDeleteBranch struct{}

// ConfirmDeleteBranch deletes the branch pending confirmation.
type ConfirmDeleteBranch struct{}

// CancelDeleteBranch dismisses the delete confirmation.
type CancelDeleteBranch struct{}

// Pull fast-forwards from origin.
type Pull struct{}

// Push sends the current branch to origin.
type Push struct{}

// Sync pulls, then pushes only if the pull succeeded.
type Sync struct{}

// Refresh re-derives the active view's list from the repository.
type Refresh struct{}

// Quit terminates the event loop.
type Quit struct{}

func (SwitchView) isCommand()          {}
func (MoveSelection) isCommand()       {}
func (Stage) isCommand()               {}
func (StageAll) isCommand()            {}
func (Discard) isCommand()             {}
func (DiscardAll) isCommand()          {}
func (OpenCommitDialog) isCommand()    {}
func (CommitWith) isCommand()          {}
func (CancelCommitDialog) isCommand()  {}
func (Checkout) isCommand()            {}
func (OpenBranchDialog) isCommand()    {}
func (CreateBranchWith) isCommand()    {}
func (CancelBranchDialog) isCommand()  {}
func (RequestDeleteBranch) isCommand() {}
func (ConfirmDeleteBranch) isCommand() {}
func (CancelDeleteBranch) isCommand()  {}
func (Pull) isCommand()                {}
func (Push) isCommand()                {}
func (Sync) isCommand()                {}
func (Refresh) isCommand()             {}
func (Quit) isCommand()                {}
