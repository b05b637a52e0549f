// File: internal/profile/service_test.go
package profile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"homequest_backend/internal/common"
	"homequest_backend/internal/identity"
	"homequest_backend/internal/kvstore"
)

func assertValidation(err error) bool {
	return common.IsErrorCode(err, "VALIDATION_ERROR")
}

func assertStoreError(t *testing.T, err error) {
	t.Helper()
	assert.True(t, common.IsErrorCode(err, "STORE_ERROR"))
}

// countingStore wraps a Store and counts writes, so tests can assert that
// lazy materialization persists exactly once.
type countingStore struct {
	kvstore.Store
	mu   sync.Mutex
	sets int
}

func (s *countingStore) Set(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return s.Store.Set(ctx, key, value)
}

func (s *countingStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

// failingStore returns an error from every operation.
type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}
func (failingStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("store down")
}
func (failingStore) Delete(ctx context.Context, key string) error {
	return errors.New("store down")
}
func (failingStore) ListByPrefix(ctx context.Context, prefix string) ([]kvstore.Entry, error) {
	return nil, errors.New("store down")
}

func testIdentity() *identity.Identity {
	return &identity.Identity{
		ID:       "uid-123",
		Email:    "ada@example.com",
		Name:     "Ada Lovelace",
		UserType: UserTypeBuyer,
	}
}

func newTestService(store kvstore.Store) *Service {
	return NewService(store, zap.NewNop())
}

func TestCreate_ValidatesUserType(t *testing.T) {
	svc := newTestService(kvstore.NewMemoryStore())

	_, err := svc.Create(context.Background(), testIdentity(), "Ada", "wizard")
	require.Error(t, err)
	assert.True(t, assertValidation(err))
}

func TestCreate_IsCreateOnce(t *testing.T) {
	svc := newTestService(kvstore.NewMemoryStore())
	ctx := context.Background()
	ident := testIdentity()

	p, err := svc.Create(ctx, ident, "Ada", UserTypeLandlord)
	require.NoError(t, err)
	assert.Equal(t, ident.ID, p.ID)
	assert.Equal(t, ident.Email, p.Email)
	assert.Equal(t, UserTypeLandlord, p.UserType)
	assert.False(t, p.CreatedAt.IsZero())

	_, err = svc.Create(ctx, ident, "Ada", UserTypeLandlord)
	require.Error(t, err)
	assert.True(t, assertValidation(err))
}

func TestGet_LazilyMaterializesAndIsIdempotent(t *testing.T) {
	store := &countingStore{Store: kvstore.NewMemoryStore()}
	svc := newTestService(store)
	ctx := context.Background()
	ident := testIdentity()

	first, err := svc.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, ident.ID, first.ID)
	assert.Equal(t, ident.Email, first.Email)
	assert.Equal(t, ident.Name, first.Name)
	assert.Equal(t, 1, store.setCount(), "lazy create must persist the synthesized record")

	second, err := svc.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.setCount(), "second read must perform no additional write")
}

func TestGet_DefaultsUnknownUserTypeToBuyer(t *testing.T) {
	svc := newTestService(kvstore.NewMemoryStore())
	ident := testIdentity()
	ident.UserType = ""

	p, err := svc.Get(context.Background(), ident)
	require.NoError(t, err)
	assert.Equal(t, UserTypeBuyer, p.UserType)
}

func TestUpdate_NeverOverwritesIDOrEmail(t *testing.T) {
	svc := newTestService(kvstore.NewMemoryStore())
	ctx := context.Background()
	ident := testIdentity()

	_, err := svc.Create(ctx, ident, "Ada", UserTypeBuyer)
	require.NoError(t, err)

	newName := "Countess of Lovelace"
	newType := UserTypeLandlord
	p, err := svc.Update(ctx, ident, UpdateRequest{Name: &newName, UserType: &newType})
	require.NoError(t, err)
	assert.Equal(t, newName, p.Name)
	assert.Equal(t, newType, p.UserType)
	// ID and email come from the identity regardless of caller input.
	assert.Equal(t, ident.ID, p.ID)
	assert.Equal(t, ident.Email, p.Email)

	// A subsequent read reflects the merge.
	stored, err := svc.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, newName, stored.Name)
	assert.Equal(t, newType, stored.UserType)
}

func TestUpdate_RevalidatesUserType(t *testing.T) {
	svc := newTestService(kvstore.NewMemoryStore())
	ctx := context.Background()
	ident := testIdentity()

	_, err := svc.Create(ctx, ident, "Ada", UserTypeBuyer)
	require.NoError(t, err)

	bad := "superadmin"
	_, err = svc.Update(ctx, ident, UpdateRequest{UserType: &bad})
	require.Error(t, err)
	assert.True(t, assertValidation(err))

	// The stored record is untouched.
	p, err := svc.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, UserTypeBuyer, p.UserType)
}

func TestUpdate_LazilyCreatesMissingProfile(t *testing.T) {
	svc := newTestService(kvstore.NewMemoryStore())
	ident := testIdentity()

	newName := "Ada L."
	p, err := svc.Update(context.Background(), ident, UpdateRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, p.Name)
	assert.Equal(t, ident.ID, p.ID)
}

func TestGet_ResyncsEmailFromIdentity(t *testing.T) {
	svc := newTestService(kvstore.NewMemoryStore())
	ctx := context.Background()
	ident := testIdentity()

	_, err := svc.Create(ctx, ident, "Ada", UserTypeBuyer)
	require.NoError(t, err)

	moved := *ident
	moved.Email = "ada@newdomain.example"
	p, err := svc.Get(ctx, &moved)
	require.NoError(t, err)
	assert.Equal(t, "ada@newdomain.example", p.Email)
}

func TestStoreFailuresSurfaceAsStoreErrors(t *testing.T) {
	svc := newTestService(failingStore{})
	ctx := context.Background()
	ident := testIdentity()

	_, err := svc.Get(ctx, ident)
	require.Error(t, err)
	assertStoreError(t, err)

	_, err = svc.Create(ctx, ident, "Ada", UserTypeBuyer)
	require.Error(t, err)
	assertStoreError(t, err)
}

func TestConcurrentUpdatesDoNotCorruptRecord(t *testing.T) {
	svc := newTestService(kvstore.NewMemoryStore())
	ctx := context.Background()
	ident := testIdentity()

	_, err := svc.Create(ctx, ident, "Ada", UserTypeBuyer)
	require.NoError(t, err)

	name := "Renamed"
	userType := UserTypeTenant
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := svc.Update(ctx, ident, UpdateRequest{Name: &name})
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := svc.Update(ctx, ident, UpdateRequest{UserType: &userType})
		assert.NoError(t, err)
	}()
	wg.Wait()

	// Last write wins per key; whichever landed, the record decodes cleanly
	// and still belongs to the right identity.
	p, err := svc.Get(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, ident.ID, p.ID)
	assert.Equal(t, ident.Email, p.Email)
	assert.True(t, IsValidUserType(p.UserType))
}
