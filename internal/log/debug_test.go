package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedMessagesFlushOnSetFile(t *testing.T) {
	Printf("buffered message %d", 42)

	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, SetFile(path))
	t.Cleanup(func() { _ = SetFile("") })

	Printf("direct message")
	require.NoError(t, Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "buffered message 42")
	assert.Contains(t, string(content), "direct message")
}

func TestEmptyPathDiscards(t *testing.T) {
	require.NoError(t, SetFile(""))
	Printf("dropped")
	assert.NoError(t, Close())
}

func TestSetFileBadPath(t *testing.T) {
	err := SetFile(filepath.Join(t.TempDir(), "missing", "sub", "debug.log"))
	assert.Error(t, err)

	// After a failed open, logging must not block or panic.
	Printf("after failure")
}
