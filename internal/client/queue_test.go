package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *PendingQueue {
	t.Helper()
	q, err := OpenQueue(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { q.Close() })
	return q
}

func TestQueue_EnqueueDrainAll(t *testing.T) {
	q := newTestQueue(t)

	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 2, SkillID1: 5, SkillID2: 10}))
	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 3, SkillID1: 6, SkillID2: 11}))

	entries, err := q.DrainAll()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Insertion order.
	assert.Equal(t, int64(2), entries[0].ToProfileID)
	assert.Equal(t, int64(3), entries[1].ToProfileID)
	assert.Less(t, entries[0].Key, entries[1].Key)
}

func TestQueue_DrainAllEmpty(t *testing.T) {
	q := newTestQueue(t)

	entries, err := q.DrainAll()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestQueue_RemoveIsIdempotent(t *testing.T) {
	q := newTestQueue(t)

	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 2, SkillID1: 5, SkillID2: 10}))
	entries, err := q.DrainAll()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	key := entries[0].Key
	require.NoError(t, q.Remove(key))
	require.NoError(t, q.Remove(key), "removing an absent key is a no-op")

	remaining, err := q.DrainAll()
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestQueue_SnapshotExcludesLaterEntries(t *testing.T) {
	q := newTestQueue(t)

	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 2, SkillID1: 5, SkillID2: 10}))
	snapshot, err := q.DrainAll()
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 3, SkillID1: 6, SkillID2: 11}))
	assert.Len(t, snapshot, 1)

	fresh, err := q.DrainAll()
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}

func TestQueue_CountAndClear(t *testing.T) {
	q := newTestQueue(t)

	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 2, SkillID1: 5, SkillID2: 10}))
	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 3, SkillID1: 6, SkillID2: 11}))

	n, err := q.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, q.Clear())
	n, err = q.Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestQueue_KeysKeepGrowingAfterRemoval(t *testing.T) {
	q := newTestQueue(t)

	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 2, SkillID1: 5, SkillID2: 10}))
	entries, err := q.DrainAll()
	require.NoError(t, err)
	require.NoError(t, q.Remove(entries[0].Key))

	require.NoError(t, q.Enqueue(PendingEntry{ToProfileID: 3, SkillID1: 6, SkillID2: 11}))
	fresh, err := q.DrainAll()
	require.NoError(t, err)
	require.Len(t, fresh, 1)
	assert.Greater(t, fresh[0].Key, entries[0].Key)
}
