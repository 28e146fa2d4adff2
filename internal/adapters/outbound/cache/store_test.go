package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archscope/archscope/internal/adapters/outbound/cache"
)

func TestStore_MissingCacheMarksEverythingChanged(t *testing.T) {
	root := t.TempDir()
	hashes := map[string]string{
		"b/Order.cs":    "h1",
		"a/Customer.cs": "h2",
	}

	changed, err := cache.New().Diff(root, hashes)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/Customer.cs", "b/Order.cs"}, changed)
}

func TestStore_UpdateThenDiff(t *testing.T) {
	root := t.TempDir()
	store := cache.New()
	hashes := map[string]string{
		"Order.cs":    "h1",
		"Customer.cs": "h2",
	}

	require.NoError(t, store.Update(root, hashes))

	changed, err := store.Diff(root, hashes)
	require.NoError(t, err)
	assert.Empty(t, changed)

	hashes["Order.cs"] = "h1-modified"
	hashes["Invoice.cs"] = "h3"
	changed, err = store.Diff(root, hashes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Invoice.cs", "Order.cs"}, changed)
}

func TestStore_Invalidate(t *testing.T) {
	root := t.TempDir()
	store := cache.New()
	hashes := map[string]string{"Order.cs": "h1"}

	require.NoError(t, store.Update(root, hashes))
	require.NoError(t, store.Invalidate(root))

	changed, err := store.Diff(root, hashes)
	require.NoError(t, err)
	assert.Equal(t, []string{"Order.cs"}, changed)

	// Invalidating twice is fine.
	assert.NoError(t, store.Invalidate(root))
}

func TestStore_CorruptCacheBehavesLikeMissing(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".archscope", "cache", "hashes.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	changed, err := cache.New().Diff(root, map[string]string{"Order.cs": "h1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Order.cs"}, changed)
}
