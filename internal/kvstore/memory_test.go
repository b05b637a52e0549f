// File: internal/kvstore/memory_test.go
package kvstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, found, err := store.Get(ctx, "profile:abc")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "profile:abc", []byte(`{"name":"Ada"}`)))

	value, found, err := store.Get(ctx, "profile:abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`{"name":"Ada"}`), value)

	// Overwrite is read-your-writes.
	require.NoError(t, store.Set(ctx, "profile:abc", []byte(`{"name":"Grace"}`)))
	value, found, err = store.Get(ctx, "profile:abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`{"name":"Grace"}`), value)

	require.NoError(t, store.Delete(ctx, "profile:abc"))
	_, found, err = store.Get(ctx, "profile:abc")
	require.NoError(t, err)
	assert.False(t, found)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete(ctx, "profile:abc"))
}

func TestMemoryStore_ListByPrefix(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "profile:a", []byte("1")))
	require.NoError(t, store.Set(ctx, "profile:b", []byte("2")))
	require.NoError(t, store.Set(ctx, "session:a", []byte("3")))

	entries, err := store.ListByPrefix(ctx, "profile:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "profile:a", entries[0].Key)
	assert.Equal(t, "profile:b", entries[1].Key)

	entries, err = store.ListByPrefix(ctx, "nothing:")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemoryStore_ConcurrentWritesAreNotDropped(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	const writers = 32
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("profile:user-%d", i)
			assert.NoError(t, store.Set(ctx, key, []byte(fmt.Sprintf("%d", i))))
		}(i)
	}
	wg.Wait()

	entries, err := store.ListByPrefix(ctx, "profile:")
	require.NoError(t, err)
	assert.Len(t, entries, writers)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", []byte("abc")))
	value, _, err := store.Get(ctx, "k")
	require.NoError(t, err)

	value[0] = 'z'

	again, _, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
