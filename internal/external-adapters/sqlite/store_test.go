package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_RequiresPath(t *testing.T) {
	_, err := NewProvider("")
	assert.Error(t, err)
}

func TestStore_RoundTrip(t *testing.T) {
	p, err := NewProvider(filepath.Join(t.TempDir(), "baselines.db"))
	require.NoError(t, err)
	ctx := context.Background()

	s, err := p.Open(ctx)
	require.NoError(t, err)

	_, found, err := s.Get(ctx, "deploy")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put(ctx, "deploy", "blob-1"))
	require.NoError(t, s.Put(ctx, "other", "blob-2"))
	require.NoError(t, s.Put(ctx, "deploy", "blob-3"))
	require.NoError(t, s.Close())

	// A fresh connection sees the persisted rows
	s, err = p.Open(ctx)
	require.NoError(t, err)
	defer s.Close() //nolint:errcheck // test cleanup

	blob, found, err := s.Get(ctx, "deploy")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "blob-3", blob)

	blob, found, err = s.Get(ctx, "other")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "blob-2", blob)
}

func TestProvider_OpenCreatesDirectory(t *testing.T) {
	p, err := NewProvider(filepath.Join(t.TempDir(), "nested", "dir", "baselines.db"))
	require.NoError(t, err)

	s, err := p.Open(context.Background())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestProvider_OpenDirectoryPath(t *testing.T) {
	p, err := NewProvider(t.TempDir())
	require.NoError(t, err)

	_, err = p.Open(context.Background())
	assert.Error(t, err)
}
