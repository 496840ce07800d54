package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/loyalty-points/internal/domain/entity"
	"github.com/Xausdorf/loyalty-points/internal/domain/repository"
	"github.com/Xausdorf/loyalty-points/internal/infrastructure/sqlite"
)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := sqlite.Open(context.Background(), "  ")
	require.Error(t, err)
}

func TestStore_SaveFindList(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "customers.db"))

	missing, err := s.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.Save(ctx, entity.NewCustomer("alice", 0)))
	require.NoError(t, s.Save(ctx, entity.NewCustomer("alice", 100)))
	require.NoError(t, s.Save(ctx, entity.NewCustomer("bob", 3)))

	alice, err := s.Find(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, alice)
	assert.Equal(t, int64(100), alice.Points())

	customers, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "alice", customers[0].ID())
	assert.Equal(t, "bob", customers[1].ID())
}

func TestStore_RoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "customers.db")

	first, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, entity.NewCustomer("u1", 42)))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	c, err := second.Find(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, int64(42), c.Points())
}

func TestStore_RejectsNegativeBalance(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "customers.db"))

	err := s.Save(context.Background(), entity.NewCustomer("u1", -1))

	assert.ErrorIs(t, err, repository.ErrPersist)
}
