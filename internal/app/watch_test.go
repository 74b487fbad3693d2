package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchServiceSignalsOnRefChange(t *testing.T) {
	dir, repo := newTestRepo(t)

	w := newWatchService()
	started, err := w.start(repo.GitDir(context.Background()))
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.stop)

	events := w.nextEvent()
	require.NotNil(t, events)

	// A second wait before the first resolves is refused.
	assert.Nil(t, w.nextEvent())

	runGitCmd(t, dir, "branch", "poke")

	select {
	case <-events:
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event after a ref change")
	}
	w.resetWaiting()
	assert.NotNil(t, w.nextEvent())
}

func TestWatchServiceStartIsIdempotent(t *testing.T) {
	_, repo := newTestRepo(t)

	w := newWatchService()
	started, err := w.start(repo.GitDir(context.Background()))
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.stop)

	started, err = w.start(repo.GitDir(context.Background()))
	require.NoError(t, err)
	assert.False(t, started)
}

func TestWatchServiceEmptyGitDir(t *testing.T) {
	w := newWatchService()
	started, err := w.start("")
	require.NoError(t, err)
	assert.False(t, started)
	assert.Nil(t, w.nextEvent())
}

func TestShouldRefreshDebounces(t *testing.T) {
	w := newWatchService()
	now := time.Now()

	assert.True(t, w.shouldRefresh(now))
	assert.False(t, w.shouldRefresh(now.Add(watchDebounce/2)))
	assert.True(t, w.shouldRefresh(now.Add(2*watchDebounce)))
}
