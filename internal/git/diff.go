package git

import (
	"strings"

	"github.com/chmouel/lazystage/internal/models"
)

// ParseDiff parses unified git diff output into hunks. File headers
// (diff --git, index, ---/+++) are dropped; each @@ line starts a hunk
// and keeps its header text.
func ParseDiff(raw string) *models.DiffView {
	view := &models.DiffView{}
	if strings.TrimSpace(raw) == "" {
		return view
	}

	var hunk *models.Hunk
	flush := func() {
		if hunk != nil {
			view.Hunks = append(view.Hunks, *hunk)
			hunk = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "@@"):
			flush()
			hunk = &models.Hunk{Header: line}
		case hunk == nil:
			// Still in the file header.
		case strings.HasPrefix(line, "+"):
			hunk.Lines = append(hunk.Lines, models.DiffLine{Kind: models.LineAdded, Text: line[1:]})
		case strings.HasPrefix(line, "-"):
			hunk.Lines = append(hunk.Lines, models.DiffLine{Kind: models.LineRemoved, Text: line[1:]})
		case strings.HasPrefix(line, "\\"):
			// "\ No newline at end of file" marker, keep as context.
			hunk.Lines = append(hunk.Lines, models.DiffLine{Kind: models.LineContext, Text: line})
		case strings.HasPrefix(line, " "):
			hunk.Lines = append(hunk.Lines, models.DiffLine{Kind: models.LineContext, Text: line[1:]})
		case line == "":
			// git emits a bare empty line for empty context lines at EOF.
			hunk.Lines = append(hunk.Lines, models.DiffLine{Kind: models.LineContext, Text: ""})
		default:
			// A new file header inside the stream ends the current hunk.
			flush()
		}
	}
	flush()

	// Trim a trailing empty context line left by the final newline split.
	for i := range view.Hunks {
		lines := view.Hunks[i].Lines
		if n := len(lines); n > 0 && lines[n-1].Kind == models.LineContext && lines[n-1].Text == "" {
			view.Hunks[i].Lines = lines[:n-1]
		}
	}
	return view
}
