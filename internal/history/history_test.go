package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, maxItems int) *Store {
	t.Helper()
	s, err := Open(":memory:", maxItems, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	clock := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return s
}

func form(client string) map[string]string {
	return map[string]string{"clientName": client, "period": "Październik 2026", "budget": "5,000"}
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t, 10)
	ctx := context.Background()

	saved, err := s.Save(ctx, form("Beauty Studio"))
	require.NoError(t, err)
	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beauty Studio", saved.ClientName)
	assert.Equal(t, "Październik 2026", saved.Period)

	got, err := s.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, saved.CreatedAt, got.CreatedAt)
	assert.Equal(t, "5,000", got.Data["budget"])
}

func TestListNewestFirstAndPrunes(t *testing.T) {
	s := newTestStore(t, 3)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D"} {
		_, err := s.Save(ctx, form(name))
		require.NoError(t, err)
	}

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "D", items[0].ClientName)
	assert.Equal(t, "C", items[1].ClientName)
	assert.Equal(t, "B", items[2].ClientName)
}

func TestPruneWithIdenticalTimestamps(t *testing.T) {
	s := newTestStore(t, 2)
	fixed := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		_, err := s.Save(ctx, form(name))
		require.NoError(t, err)
	}
	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "C", items[0].ClientName)
	assert.Equal(t, "B", items[1].ClientName)
}

func TestEmptyList(t *testing.T) {
	items, err := newTestStore(t, 10).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestDeleteAndNotFound(t *testing.T) {
	s := newTestStore(t, 10)
	ctx := context.Background()

	item, err := s.Save(ctx, form("A"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, item.ID))

	_, err = s.Get(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, item.ID), ErrNotFound)

	_, err = s.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClear(t *testing.T) {
	s := newTestStore(t, 10)
	ctx := context.Background()
	for _, name := range []string{"A", "B"} {
		_, err := s.Save(ctx, form(name))
		require.NoError(t, err)
	}
	require.NoError(t, s.Clear(ctx))

	items, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	s, err := Open(path, 0, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxItems, s.MaxItems())

	item, err := s.Save(context.Background(), form("A"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path, 0, zerolog.Nop())
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.ClientName)
}
