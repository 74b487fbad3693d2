package models

// LineKind tags a diff line as context, added, or removed.
type LineKind int

// Diff line kinds.
const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// DiffLine is a single line within a hunk.
type DiffLine struct {
	Kind LineKind
	Text string
}

// Hunk is a contiguous block of changed lines with its @@ header.
type Hunk struct {
	Header string
	Lines  []DiffLine
}

// DiffView holds the parsed diff for exactly one file, either the staged
// or the unstaged side.
type DiffView struct {
	Path   string
	Staged bool
	Hunks  []Hunk
}

// Empty reports whether the diff contains no hunks.
func (d *DiffView) Empty() bool {
	return d == nil || len(d.Hunks) == 0
}

// LineCount returns the total number of lines across all hunks.
func (d *DiffView) LineCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, h := range d.Hunks {
		n += 1 + len(h.Lines)
	}
	return n
}
