package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/textcanvas/backend/internal/models"
)

func insertDesign(t *testing.T, store *MemoryDesignStore, text string) *models.Design {
	t.Helper()
	d, err := store.Insert(&models.Design{Text: text, ImagePath: "/tmp/" + text + ".png"})
	require.NoError(t, err)
	return d
}

func TestMemoryStoreAssignsMonotonicIDs(t *testing.T) {
	store := NewMemoryDesignStore()

	first := insertDesign(t, store, "a")
	second := insertDesign(t, store, "b")
	third := insertDesign(t, store, "c")

	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, uint64(2), second.ID)
	assert.Equal(t, uint64(3), third.ID)

	// Deleted ids are never reused.
	_, err := store.Delete(second.ID)
	require.NoError(t, err)
	fourth := insertDesign(t, store, "d")
	assert.Equal(t, uint64(4), fourth.ID)
}

func TestMemoryStoreStampsTimestampsOnce(t *testing.T) {
	store := NewMemoryDesignStore()
	d := insertDesign(t, store, "a")

	assert.False(t, d.CreatedAt.IsZero())
	assert.Equal(t, d.CreatedAt, d.UpdatedAt)
}

func TestMemoryStoreGet(t *testing.T) {
	store := NewMemoryDesignStore()
	inserted := insertDesign(t, store, "hello")

	got, err := store.Get(inserted.ID)
	require.NoError(t, err)
	assert.Equal(t, *inserted, *got)

	_, err = store.Get(999)
	assert.ErrorIs(t, err, ErrDesignNotFound)
}

func TestMemoryStoreListInsertionOrder(t *testing.T) {
	store := NewMemoryDesignStore()
	insertDesign(t, store, "first")
	insertDesign(t, store, "second")
	insertDesign(t, store, "third")

	designs, err := store.List()
	require.NoError(t, err)
	require.Len(t, designs, 3)
	assert.Equal(t, "first", designs[0].Text)
	assert.Equal(t, "second", designs[1].Text)
	assert.Equal(t, "third", designs[2].Text)
}

func TestMemoryStoreDeleteReturnsRecord(t *testing.T) {
	store := NewMemoryDesignStore()
	a := insertDesign(t, store, "a")
	insertDesign(t, store, "b")

	deleted, err := store.Delete(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ImagePath, deleted.ImagePath)

	designs, _ := store.List()
	assert.Len(t, designs, 1)

	// Unknown id leaves the store unchanged.
	_, err = store.Delete(a.ID)
	assert.ErrorIs(t, err, ErrDesignNotFound)
	designs, _ = store.List()
	assert.Len(t, designs, 1)
}

func TestMemoryStoreEvictOlderThan(t *testing.T) {
	store := NewMemoryDesignStore()
	insertDesign(t, store, "old-1")
	insertDesign(t, store, "old-2")
	cutoff := time.Now()
	time.Sleep(2 * time.Millisecond)
	insertDesign(t, store, "fresh")

	evicted, remaining, err := store.EvictOlderThan(cutoff)
	require.NoError(t, err)
	assert.Len(t, evicted, 2)
	assert.Equal(t, 1, remaining)

	designs, _ := store.List()
	require.Len(t, designs, 1)
	assert.Equal(t, "fresh", designs[0].Text)
}

func TestMemoryStoreEvictEverythingAndNothing(t *testing.T) {
	store := NewMemoryDesignStore()
	insertDesign(t, store, "a")
	insertDesign(t, store, "b")

	// A cutoff far in the past evicts nothing.
	evicted, remaining, err := store.EvictOlderThan(time.Now().AddDate(-100, 0, 0))
	require.NoError(t, err)
	assert.Empty(t, evicted)
	assert.Equal(t, 2, remaining)

	// A cutoff in the future evicts everything.
	evicted, remaining, err = store.EvictOlderThan(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, evicted, 2)
	assert.Equal(t, 0, remaining)
}
