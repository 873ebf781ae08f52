package assistant

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager_GetOrCreate(t *testing.T) {
	manager := NewSessionManager(testLogger(), DefaultMaxHistoryLength)

	created := manager.GetOrCreate("session-1")
	require.NotNil(t, created)
	assert.Equal(t, "session-1", created.ID)

	again := manager.GetOrCreate("session-1")
	assert.Same(t, created, again, "same id must return the same session")

	generated := manager.GetOrCreate("")
	assert.NotEmpty(t, generated.ID)
	assert.NotEqual(t, created.ID, generated.ID)
	assert.Equal(t, 2, manager.Count())
}

func TestSessionManager_Remove(t *testing.T) {
	manager := NewSessionManager(testLogger(), DefaultMaxHistoryLength)
	manager.GetOrCreate("session-1")

	manager.Remove("session-1")

	assert.Nil(t, manager.Get("session-1"))
	assert.Equal(t, 0, manager.Count())
}

func TestSessionManager_PruneIdle(t *testing.T) {
	manager := NewSessionManager(testLogger(), DefaultMaxHistoryLength)

	stale := manager.GetOrCreate("stale")
	stale.stateMu.Lock()
	stale.lastUsed = time.Now().Add(-2 * time.Hour)
	stale.stateMu.Unlock()

	fresh := manager.GetOrCreate("fresh")
	fresh.touch()

	pruned := manager.PruneIdle(time.Hour)

	assert.Equal(t, 1, pruned)
	assert.Nil(t, manager.Get("stale"))
	assert.NotNil(t, manager.Get("fresh"))
}
