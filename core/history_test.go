package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryRecordAssignsSequentialIDs(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 7; i++ {
		h.Record(fmt.Sprintf("cmd %d", i))
	}

	entries := h.Enumerate()
	require.Len(t, entries, 7)
	for i, e := range entries {
		assert.Equal(t, uint(i+1), e.ID)
		assert.Equal(t, fmt.Sprintf("cmd %d", i), e.Text)
	}
	assert.Equal(t, uint(8), h.NextID())
}

func TestHistoryIgnoresBlankText(t *testing.T) {
	h := NewHistory(10)
	h.Record("")
	h.Record("   \t ")
	assert.Empty(t, h.Enumerate())
	assert.Equal(t, uint(1), h.NextID())
}

func TestHistoryEvictsOldestOnOverflow(t *testing.T) {
	h := NewHistory(10)
	for i := 1; i <= 11; i++ {
		h.Record(fmt.Sprintf("cmd %d", i))
	}

	entries := h.Enumerate()
	require.Len(t, entries, 10)
	assert.Equal(t, uint(2), entries[0].ID)
	assert.Equal(t, uint(11), entries[9].ID)

	_, ok := h.Lookup(1)
	assert.False(t, ok, "evicted ID must be unrecoverable")

	text, ok := h.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "cmd 2", text)
}

func TestHistoryLookupUnknownID(t *testing.T) {
	h := NewHistory(10)
	h.Record("ls")

	_, ok := h.Lookup(0)
	assert.False(t, ok)
	_, ok = h.Lookup(99)
	assert.False(t, ok)
}

func TestHistoryClearKeepsIDCounter(t *testing.T) {
	h := NewHistory(10)
	h.Record("one")
	h.Record("two")
	h.Clear()

	assert.Empty(t, h.Enumerate())
	assert.Equal(t, uint(3), h.NextID())

	h.Record("three")
	entries := h.Enumerate()
	require.Len(t, entries, 1)
	assert.Equal(t, uint(3), entries[0].ID)
}

func TestHistoryCapacityFallback(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistorySize+1; i++ {
		h.Record("x")
	}
	assert.Len(t, h.Enumerate(), DefaultHistorySize)
}
