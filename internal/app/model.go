package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chmouel/lazystage/internal/config"
	"github.com/chmouel/lazystage/internal/git"
	"github.com/chmouel/lazystage/internal/theme"
)

type gitDirChangedMsg struct{}

// Model is the bubbletea model. It owns the event loop: each keystroke
// is decoded into a Command and applied synchronously by the executor,
// then the render layer reads the state store. The repository handle is
// owned by this loop for its entire lifetime.
type Model struct {
	config *config.AppConfig
	theme  *theme.Theme
	repo   *git.Repo
	state  *AppState
	exec   *Executor

	diffViewport viewport.Model
	commitInput  textinput.Model
	branchInput  textinput.Model

	watch *watchService

	ctx    context.Context
	cancel context.CancelFunc

	windowWidth  int
	windowHeight int
}

// NewModel builds the model and populates every list so that view
// switches afterwards are pure navigation.
func NewModel(cfg *config.AppConfig, repo *git.Repo) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	thm := theme.ByName(cfg.Theme)
	if thm == nil {
		thm = theme.Dracula()
	}

	commitInput := textinput.New()
	commitInput.Placeholder = "Commit message"
	commitInput.CharLimit = 200
	commitInput.Width = 52
	commitInput.Prompt = ""

	branchInput := textinput.New()
	branchInput.Placeholder = "Branch name"
	branchInput.CharLimit = 100
	branchInput.Width = 52
	branchInput.Prompt = ""

	state := NewAppState()
	exec := NewExecutor(repo, state, cfg.HistoryLimit)

	m := &Model{
		config:       cfg,
		theme:        thm,
		repo:         repo,
		state:        state,
		exec:         exec,
		diffViewport: viewport.New(80, 20),
		commitInput:  commitInput,
		branchInput:  branchInput,
		watch:        newWatchService(),
		ctx:          ctx,
		cancel:       cancel,
	}

	if err := exec.RefreshAll(ctx); err != nil {
		state.StatusMessage = statusFromError(err)
	}
	m.syncDiffViewport()
	return m
}

// Close releases the watcher and the model context.
func (m *Model) Close() {
	m.watch.stop()
	m.cancel()
}

// State exposes the state store to tests.
func (m *Model) State() *AppState {
	return m.state
}

// Init starts the git-dir watcher when auto refresh is enabled.
func (m *Model) Init() tea.Cmd {
	if !m.config.AutoRefresh {
		return nil
	}
	started, err := m.watch.start(m.repo.GitDir(m.ctx))
	if err != nil || !started {
		return nil
	}
	return m.waitForWatchEvent()
}

func (m *Model) waitForWatchEvent() tea.Cmd {
	events := m.watch.nextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return gitDirChangedMsg{}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case gitDirChangedMsg:
		m.watch.resetWaiting()
		if m.watch.shouldRefresh(time.Now()) {
			m.exec.Apply(m.ctx, Refresh{})
			m.syncDiffViewport()
		}
		return m, m.waitForWatchEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.Overlay {
	case OverlayCommit:
		return m.handleCommitDialogKey(msg)
	case OverlayBranchNew:
		return m.handleBranchDialogKey(msg)
	case OverlayBranchDelete:
		return m.handleDeleteConfirmKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m.apply(Quit{})
	case "1":
		return m.apply(SwitchView{Target: ViewFiles})
	case "2":
		return m.apply(SwitchView{Target: ViewHistory})
	case "3":
		return m.apply(SwitchView{Target: ViewBranches})
	case "r":
		return m.apply(Refresh{})
	case "j", "down":
		return m.apply(MoveSelection{Delta: 1})
	case "k", "up":
		return m.apply(MoveSelection{Delta: -1})
	case "ctrl+d", "pgdown":
		if m.state.ActiveView == ViewFiles {
			m.diffViewport.HalfPageDown()
		}
		return m, nil
	case "ctrl+u", "pgup":
		if m.state.ActiveView == ViewFiles {
			m.diffViewport.HalfPageUp()
		}
		return m, nil
	case "G":
		if m.state.ActiveView == ViewFiles {
			m.diffViewport.GotoBottom()
		}
		return m, nil
	}

	switch m.state.ActiveView {
	case ViewFiles:
		return m.handleFilesKey(msg)
	case ViewBranches:
		return m.handleBranchesKey(msg)
	}
	return m, nil
}

func (m *Model) handleFilesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		return m.apply(Stage{})
	case "a":
		return m.apply(StageAll{})
	case "x":
		return m.apply(Discard{})
	case "X":
		return m.apply(DiscardAll{})
	case "c":
		_, cmd := m.apply(OpenCommitDialog{})
		if m.state.Overlay == OverlayCommit {
			m.commitInput.SetValue("")
			m.commitInput.Focus()
			return m, tea.Batch(cmd, textinput.Blink)
		}
		return m, cmd
	case "p":
		return m.apply(Pull{})
	case "P":
		return m.apply(Push{})
	case "S":
		return m.apply(Sync{})
	}
	return m, nil
}

func (m *Model) handleBranchesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "o":
		return m.apply(Checkout{})
	case "n":
		_, cmd := m.apply(OpenBranchDialog{})
		if m.state.Overlay == OverlayBranchNew {
			m.branchInput.SetValue("")
			m.branchInput.Focus()
			return m, tea.Batch(cmd, textinput.Blink)
		}
		return m, cmd
	case "d":
		return m.apply(RequestDeleteBranch{})
	}
	return m, nil
}

func (m *Model) handleCommitDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commitInput.Blur()
		return m.apply(CancelCommitDialog{})
	case "enter":
		model, cmd := m.apply(CommitWith{Text: m.commitInput.Value()})
		if m.state.Overlay == OverlayNone {
			m.commitInput.Blur()
		}
		return model, cmd
	}
	var cmd tea.Cmd
	m.commitInput, cmd = m.commitInput.Update(msg)
	m.state.CommitBuffer = m.commitInput.Value()
	return m, cmd
}

func (m *Model) handleBranchDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.branchInput.Blur()
		return m.apply(CancelBranchDialog{})
	case "enter":
		model, cmd := m.apply(CreateBranchWith{Name: m.branchInput.Value()})
		if m.state.Overlay == OverlayNone {
			m.branchInput.Blur()
		}
		return model, cmd
	}
	var cmd tea.Cmd
	m.branchInput, cmd = m.branchInput.Update(msg)
	m.state.BranchBuffer = m.branchInput.Value()
	return m, cmd
}

func (m *Model) handleDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		return m.apply(ConfirmDeleteBranch{})
	case "n", "N", "esc":
		return m.apply(CancelDeleteBranch{})
	}
	return m, nil
}

// apply routes a command through the executor and syncs derived UI state.
func (m *Model) apply(cmd Command) (tea.Model, tea.Cmd) {
	m.exec.Apply(m.ctx, cmd)
	m.syncDiffViewport()
	if m.state.Quitting {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) setWindowSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height
	m.diffViewport.Width = m.diffPaneWidth()
	m.diffViewport.Height = m.bodyHeight()
	m.syncDiffViewport()
}

// syncDiffViewport re-renders the cached diff into the viewport and
// resets the scroll position, so a stale diff is never shown.
func (m *Model) syncDiffViewport() {
	m.diffViewport.SetContent(m.renderDiff())
	m.diffViewport.GotoTop()
}
