package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir() + "/workspace.db")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewItemAndLatest(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	item, err := s.NewItem(ctx, "Draft", "hello world")
	require.NoError(t, err)
	assert.Equal(t, 1, item.Version)

	latest, err := s.Latest(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item, latest)
}

func TestNewVersionPreservesHistory(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	v1, err := s.NewItem(ctx, "Draft", "hello world")
	require.NoError(t, err)

	v2, err := s.NewVersion(ctx, v1, "Draft", "HELLO WORLD")
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Version)
	require.NotNil(t, v2.SourceID)
	assert.Equal(t, v1.ID, *v2.SourceID)

	history, err := s.History(ctx, v1.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "hello world", history[0].Body)
	assert.Equal(t, "HELLO WORLD", history[1].Body)

	latest, err := s.Latest(ctx, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, v2, latest)
}
