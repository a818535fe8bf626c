package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func participant(n int) Participant {
	return Participant{
		SessionID: fmt.Sprintf("session-%d", n),
		UserID:    uint(n),
		Username:  fmt.Sprintf("user%d", n),
	}
}

func TestRegistryAddCreatesRoom(t *testing.T) {
	r := NewRegistry()

	snapshot := r.Add("general", participant(1))
	require.Len(t, snapshot, 1)
	assert.Equal(t, "session-1", snapshot[0].SessionID)

	got, ok := r.Snapshot("general")
	require.True(t, ok)
	assert.Equal(t, snapshot, got)
}

func TestRegistrySnapshotJoinOrder(t *testing.T) {
	r := NewRegistry()

	r.Add("general", participant(3))
	r.Add("general", participant(1))
	r.Add("general", participant(2))

	snapshot, ok := r.Snapshot("general")
	require.True(t, ok)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "session-3", snapshot[0].SessionID)
	assert.Equal(t, "session-1", snapshot[1].SessionID)
	assert.Equal(t, "session-2", snapshot[2].SessionID)
}

func TestRegistryAddIsIdempotentUpsert(t *testing.T) {
	r := NewRegistry()

	r.Add("general", participant(1))
	r.Add("general", participant(2))

	// Re-adding the same session neither grows the room nor moves the
	// participant to the back
	updated := participant(1)
	updated.Username = "renamed"
	snapshot := r.Add("general", updated)

	require.Len(t, snapshot, 2)
	assert.Equal(t, "session-1", snapshot[0].SessionID)
	assert.Equal(t, "renamed", snapshot[0].Username)
}

func TestRegistryRemovePrunesEmptyRoom(t *testing.T) {
	r := NewRegistry()

	r.Add("general", participant(1))
	snapshot, alive := r.Remove("general", "session-1")
	assert.False(t, alive)
	assert.Empty(t, snapshot)

	// The room is gone, not an empty set that still shows as a room
	_, ok := r.Snapshot("general")
	assert.False(t, ok)
}

func TestRegistryRemoveKeepsPopulatedRoom(t *testing.T) {
	r := NewRegistry()

	r.Add("general", participant(1))
	r.Add("general", participant(2))

	snapshot, alive := r.Remove("general", "session-1")
	require.True(t, alive)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "session-2", snapshot[0].SessionID)
}

func TestRegistryRemoveMissingIsNoOp(t *testing.T) {
	r := NewRegistry()

	_, alive := r.Remove("nowhere", "session-1")
	assert.False(t, alive)

	r.Add("general", participant(1))
	snapshot, alive := r.Remove("general", "session-99")
	assert.True(t, alive)
	assert.Len(t, snapshot, 1)
}

func TestRegistrySnapshotMissingRoom(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Snapshot("ghost")
	assert.False(t, ok)
}
