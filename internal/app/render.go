package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wrap"

	"github.com/chmouel/lazystage/internal/models"
)

const (
	minListPaneWidth = 30
	minDiffPaneWidth = 40
)

// View renders the whole screen from the state store.
func (m *Model) View() string {
	if m.state.Quitting {
		return ""
	}

	width, height := m.layoutSize()
	header := m.renderHeader(width)
	footer := m.renderFooter(width)
	var body string
	switch m.state.ActiveView {
	case ViewFiles:
		body = m.renderFilesBody(width)
	case ViewHistory:
		body = m.renderHistoryBody(width)
	case ViewBranches:
		body = m.renderBranchesBody(width)
	}
	screen := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)

	if m.state.Overlay != OverlayNone {
		dialog := m.renderOverlay()
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
	}
	return screen
}

func (m *Model) layoutSize() (int, int) {
	width := m.windowWidth
	height := m.windowHeight
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 40
	}
	return width, height
}

func (m *Model) bodyHeight() int {
	_, height := m.layoutSize()
	h := height - 2 // header and footer
	if h < 6 {
		h = 6
	}
	return h
}

func (m *Model) listPaneWidth() int {
	width, _ := m.layoutSize()
	w := int(float64(width) * 0.40)
	if w < minListPaneWidth {
		w = minListPaneWidth
	}
	return w
}

func (m *Model) diffPaneWidth() int {
	width, _ := m.layoutSize()
	w := width - m.listPaneWidth() - 1
	if w < minDiffPaneWidth {
		w = minDiffPaneWidth
	}
	return w
}

func (m *Model) renderHeader(width int) string {
	activeTab := lipgloss.NewStyle().
		Background(m.theme.Accent).
		Foreground(m.theme.AccentFg).
		Bold(true).
		Padding(0, 1)
	inactiveTab := lipgloss.NewStyle().
		Foreground(m.theme.MutedFg).
		Padding(0, 1)

	var tabs []string
	for i, v := range []View{ViewFiles, ViewHistory, ViewBranches} {
		label := fmt.Sprintf("[%d] %s", i+1, v)
		if v == m.state.ActiveView {
			tabs = append(tabs, activeTab.Render(label))
		} else {
			tabs = append(tabs, inactiveTab.Render(label))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	branch := m.state.CurrentBranchName()
	right := ""
	if branch != "" {
		right = lipgloss.NewStyle().
			Foreground(m.theme.Accent).
			Bold(true).
			Render(" " + branch)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Width(width).Render(line)
}

func (m *Model) renderFilesBody(width int) string {
	listWidth := m.listPaneWidth()
	diffWidth := width - listWidth - 1
	if diffWidth < minDiffPaneWidth {
		diffWidth = minDiffPaneWidth
	}
	left := m.renderFileList(listWidth)
	right := m.renderDiffPane(diffWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m *Model) renderFileList(width int) string {
	height := m.bodyHeight()
	innerWidth := width - paneStyleFrame()

	var lines []string
	if len(m.state.Files) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(m.theme.MutedFg).
			Render("Working tree clean."))
	}
	selected := m.state.Selection(ViewFiles)
	rows := max(1, height-3)
	first := m.visibleWindow(len(m.state.Files), selected, rows)
	last := min(len(m.state.Files), first+rows)
	for i := first; i < last; i++ {
		lines = append(lines, m.renderFileRow(m.state.Files[i], i == selected, innerWidth))
	}

	title := m.renderPaneTitle("Files", innerWidth)
	content := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
	return m.paneStyle().Width(width).Height(height).Render(content)
}

func (m *Model) renderFileRow(entry models.FileEntry, selected bool, width int) string {
	stagedStyle := lipgloss.NewStyle().Foreground(m.theme.SuccessFg)
	unstagedStyle := lipgloss.NewStyle().Foreground(m.theme.ErrorFg)
	codes := stagedStyle.Render(entry.Staged.String()) + unstagedStyle.Render(entry.Unstaged.String())

	icon := ""
	if m.config.ShowIcons {
		icon = iconWithSpace(deviconForName(entry.Path))
	}
	row := fmt.Sprintf("%s %s%s", codes, icon, entry.Path)
	row = truncate.StringWithTail(row, uint(max(1, width)), "…")
	if selected {
		return lipgloss.NewStyle().
			Background(m.theme.Accent).
			Foreground(m.theme.AccentFg).
			Width(width).
			Render(row)
	}
	return lipgloss.NewStyle().Foreground(m.theme.TextFg).Render(row)
}

func (m *Model) renderDiffPane(width int) string {
	height := m.bodyHeight()
	innerWidth := width - paneStyleFrame()
	title := m.renderPaneTitle(m.diffPaneTitle(), innerWidth)
	m.diffViewport.Width = max(1, innerWidth)
	m.diffViewport.Height = max(1, height-3)
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.diffViewport.View())
	return m.paneStyle().Width(width).Height(height).Render(content)
}

func (m *Model) diffPaneTitle() string {
	diff := m.state.Diff
	if diff == nil {
		return "Diff"
	}
	if diff.Staged {
		return "Diff (staged)"
	}
	return "Diff"
}

// renderDiff produces the viewport content for the cached diff.
func (m *Model) renderDiff() string {
	diff := m.state.Diff
	if diff == nil || diff.Empty() {
		return lipgloss.NewStyle().
			Foreground(m.theme.MutedFg).
			Render("No changes to show.")
	}

	hunkStyle := lipgloss.NewStyle().Foreground(m.theme.HunkFg).Bold(true)
	addedStyle := lipgloss.NewStyle().Foreground(m.theme.AddedFg)
	removedStyle := lipgloss.NewStyle().Foreground(m.theme.RemovedFg)
	contextStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)

	limit := max(1, m.diffViewport.Width)
	var b strings.Builder
	for i, hunk := range diff.Hunks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(hunkStyle.Render(wrap.String(hunk.Header, limit)))
		b.WriteString("\n")
		for _, line := range hunk.Lines {
			text := wrap.String(line.Text, limit)
			switch line.Kind {
			case models.LineAdded:
				b.WriteString(addedStyle.Render(text))
			case models.LineRemoved:
				b.WriteString(removedStyle.Render(text))
			default:
				b.WriteString(contextStyle.Render(text))
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderHistoryBody(width int) string {
	height := m.bodyHeight()
	innerWidth := width - paneStyleFrame()

	hashStyle := lipgloss.NewStyle().Foreground(m.theme.WarnFg)
	dateStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	authorStyle := lipgloss.NewStyle().Foreground(m.theme.SuccessFg)
	msgStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)

	var lines []string
	if len(m.state.Commits) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(m.theme.MutedFg).
			Render("No commits yet."))
	}
	selected := m.state.Selection(ViewHistory)
	rows := max(1, height-3)
	first := m.visibleWindow(len(m.state.Commits), selected, rows)
	last := min(len(m.state.Commits), first+rows)
	for i := first; i < last; i++ {
		c := m.state.Commits[i]
		row := fmt.Sprintf("%s %s %s %s",
			hashStyle.Render(c.ShortHash()),
			dateStyle.Render(c.AuthorDate),
			authorStyle.Render(c.AuthorName),
			msgStyle.Render(c.Message))
		row = truncate.StringWithTail(row, uint(max(1, innerWidth)), "…")
		if i == selected {
			row = lipgloss.NewStyle().
				Background(m.theme.Accent).
				Foreground(m.theme.AccentFg).
				Width(innerWidth).
				Render(fmt.Sprintf("%s %s %s %s", c.ShortHash(), c.AuthorDate, c.AuthorName, c.Message))
		}
		lines = append(lines, row)
	}

	title := m.renderPaneTitle("History", innerWidth)
	content := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
	return m.paneStyle().Width(width).Height(height).Render(content)
}

func (m *Model) renderBranchesBody(width int) string {
	height := m.bodyHeight()
	innerWidth := width - paneStyleFrame()

	var lines []string
	if len(m.state.Branches) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(m.theme.MutedFg).
			Render("No branches."))
	}
	selected := m.state.Selection(ViewBranches)
	rows := max(1, height-3)
	first := m.visibleWindow(len(m.state.Branches), selected, rows)
	last := min(len(m.state.Branches), first+rows)
	for i := first; i < last; i++ {
		br := m.state.Branches[i]
		marker := "  "
		if br.IsCurrent {
			marker = "* "
		}
		row := marker + br.Name
		row = truncate.StringWithTail(row, uint(max(1, innerWidth)), "…")
		switch {
		case i == selected:
			row = lipgloss.NewStyle().
				Background(m.theme.Accent).
				Foreground(m.theme.AccentFg).
				Width(innerWidth).
				Render(row)
		case br.IsCurrent:
			row = lipgloss.NewStyle().Foreground(m.theme.SuccessFg).Bold(true).Render(row)
		default:
			row = lipgloss.NewStyle().Foreground(m.theme.TextFg).Render(row)
		}
		lines = append(lines, row)
	}

	title := m.renderPaneTitle("Branches", innerWidth)
	content := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
	return m.paneStyle().Width(width).Height(height).Render(content)
}

// visibleWindow returns the first index to draw so that the selection
// stays on screen for lists taller than the pane.
func (m *Model) visibleWindow(total, selected, rows int) int {
	if rows <= 0 || total <= rows {
		return 0
	}
	first := selected - rows + 1
	if first < 0 {
		first = 0
	}
	return first
}

func (m *Model) renderFooter(width int) string {
	footerStyle := lipgloss.NewStyle().
		Foreground(m.theme.MutedFg).
		Padding(0, 1)

	var hints []string
	switch m.state.ActiveView {
	case ViewFiles:
		hints = []string{
			m.renderKeyHint("s", "Stage"),
			m.renderKeyHint("a", "Stage All"),
			m.renderKeyHint("x", "Discard"),
			m.renderKeyHint("c", "Commit"),
			m.renderKeyHint("p", "Pull"),
			m.renderKeyHint("P", "Push"),
			m.renderKeyHint("S", "Sync"),
		}
	case ViewHistory:
		hints = []string{
			m.renderKeyHint("j/k", "Navigate"),
		}
	case ViewBranches:
		hints = []string{
			m.renderKeyHint("enter", "Checkout"),
			m.renderKeyHint("n", "New"),
			m.renderKeyHint("d", "Delete"),
		}
	}
	hints = append(hints,
		m.renderKeyHint("1-3", "View"),
		m.renderKeyHint("r", "Refresh"),
		m.renderKeyHint("q", "Quit"),
	)

	status := m.state.StatusMessage
	line := strings.Join(hints, "  ")
	if status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(m.theme.WarnFg).Bold(true)
		line = statusStyle.Render(status) + "  " + line
	}
	return footerStyle.Width(width).Render(truncate.StringWithTail(line, uint(max(1, width-2)), "…"))
}

func (m *Model) renderKeyHint(key, label string) string {
	keyStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	return fmt.Sprintf("%s %s", keyStyle.Render(key), labelStyle.Render(label))
}

func (m *Model) renderPaneTitle(title string, width int) string {
	return lipgloss.NewStyle().
		Foreground(m.theme.Accent).
		Bold(true).
		Width(width).
		Render(title)
}

func (m *Model) renderOverlay() string {
	switch m.state.Overlay {
	case OverlayCommit:
		return m.renderInputDialog("Commit", m.commitInput.View(), "enter: commit  esc: cancel")
	case OverlayBranchNew:
		return m.renderInputDialog("New branch", m.branchInput.View(), "enter: create  esc: cancel")
	case OverlayBranchDelete:
		msg := fmt.Sprintf("Delete branch %q?", m.state.DeleteTarget)
		return m.renderInputDialog("Confirm", msg, "y: delete  n: cancel")
	}
	return ""
}

func (m *Model) renderInputDialog(title, body, hint string) string {
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.Accent).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(title),
		"",
		body,
		"",
		hintStyle.Render(hint),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Accent).
		Padding(1, 2).
		Render(content)
}

func (m *Model) paneStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)
}

// paneStyleFrame is the horizontal space taken by pane borders and padding.
func paneStyleFrame() int {
	return 4
}
