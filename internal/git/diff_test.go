package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazystage/internal/models"
)

const sampleDiff = `diff --git a/main.go b/main.go
index 1234567..89abcde 100644
--- a/main.go
+++ b/main.go
@@ -1,4 +1,5 @@
 package main

-func run() {}
+func run() error {
+	return nil
+}
@@ -10,2 +11,2 @@ func helper() {
 	x := 1
-	y := 2
+	y := 3
`

func TestParseDiffHunks(t *testing.T) {
	view := ParseDiff(sampleDiff)
	require.Len(t, view.Hunks, 2)

	first := view.Hunks[0]
	assert.Equal(t, "@@ -1,4 +1,5 @@", first.Header)
	require.Len(t, first.Lines, 6)
	assert.Equal(t, models.LineContext, first.Lines[0].Kind)
	assert.Equal(t, "package main", first.Lines[0].Text)
	assert.Equal(t, models.LineRemoved, first.Lines[2].Kind)
	assert.Equal(t, "func run() {}", first.Lines[2].Text)
	assert.Equal(t, models.LineAdded, first.Lines[3].Kind)
	assert.Equal(t, "func run() error {", first.Lines[3].Text)

	second := view.Hunks[1]
	assert.Equal(t, "@@ -10,2 +11,2 @@ func helper() {", second.Header)
	require.Len(t, second.Lines, 3)
	assert.Equal(t, models.LineRemoved, second.Lines[1].Kind)
	assert.Equal(t, models.LineAdded, second.Lines[2].Kind)
}

func TestParseDiffEmpty(t *testing.T) {
	view := ParseDiff("")
	assert.True(t, view.Empty())
	assert.Equal(t, 0, view.LineCount())

	view = ParseDiff("   \n")
	assert.True(t, view.Empty())
}

func TestParseDiffNoNewlineMarker(t *testing.T) {
	raw := `diff --git a/x b/x
--- a/x
+++ b/x
@@ -1 +1 @@
-old
+new
\ No newline at end of file
`
	view := ParseDiff(raw)
	require.Len(t, view.Hunks, 1)
	lines := view.Hunks[0].Lines
	require.Len(t, lines, 3)
	assert.Equal(t, models.LineRemoved, lines[0].Kind)
	assert.Equal(t, models.LineAdded, lines[1].Kind)
	assert.Equal(t, models.LineContext, lines[2].Kind)
	assert.Equal(t, `\ No newline at end of file`, lines[2].Text)
}

func TestParseDiffMultipleFiles(t *testing.T) {
	raw := `diff --git a/a.go b/a.go
--- a/a.go
+++ b/a.go
@@ -1 +1 @@
-alpha
+ALPHA
diff --git a/b.go b/b.go
--- a/b.go
+++ b/b.go
@@ -1 +1 @@
-beta
+BETA
`
	view := ParseDiff(raw)
	require.Len(t, view.Hunks, 2)
	assert.Equal(t, "alpha", view.Hunks[0].Lines[0].Text)
	assert.Equal(t, "beta", view.Hunks[1].Lines[0].Text)
}
