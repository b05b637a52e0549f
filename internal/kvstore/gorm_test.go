// File: internal/kvstore/gorm_test.go
package kvstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestGORMStore(t *testing.T) Store {
	t.Helper()
	// One named in-memory database per test so state never leaks across tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	store, err := NewGORMStore(db)
	require.NoError(t, err)
	return store
}

func TestGORMStore_UpsertIsAtomicPerKey(t *testing.T) {
	ctx := context.Background()
	store := newTestGORMStore(t)

	require.NoError(t, store.Set(ctx, "profile:uid-1", []byte(`{"v":1}`)))
	// Second Set on the same key must replace, not conflict.
	require.NoError(t, store.Set(ctx, "profile:uid-1", []byte(`{"v":2}`)))

	value, found, err := store.Get(ctx, "profile:uid-1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []byte(`{"v":2}`), value)
}

func TestGORMStore_ListByPrefixEscapesPattern(t *testing.T) {
	ctx := context.Background()
	store := newTestGORMStore(t)

	require.NoError(t, store.Set(ctx, "profile:a", []byte("a")))
	require.NoError(t, store.Set(ctx, "profile:b", []byte("b")))
	require.NoError(t, store.Set(ctx, "profilexc", []byte("c")))

	// "profile_" as a raw LIKE pattern would match "profilexc"; the store
	// must treat the prefix literally.
	entries, err := store.ListByPrefix(ctx, "profile_")
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = store.ListByPrefix(ctx, "profile:")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "profile:a", entries[0].Key)
	assert.Equal(t, "profile:b", entries[1].Key)
}

func TestGORMStore_DeleteAbsentKey(t *testing.T) {
	ctx := context.Background()
	store := newTestGORMStore(t)

	require.NoError(t, store.Delete(ctx, "profile:missing"))

	_, found, err := store.Get(ctx, "profile:missing")
	require.NoError(t, err)
	assert.False(t, found)
}
