package badger

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// setupTestCache opens an in-memory cache for testing.
func setupTestCache(t *testing.T, quota int64) *ResultCache {
	t.Helper()
	c, err := Open("", true, quota)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func sampleResults() domain.ResultSet {
	return domain.ResultSet{
		{
			Title:     "Concatenate strings",
			Link:      "https://blog.example.com/concat.html",
			Summary:   "Use strings.Builder",
			Thumbnail: "https://img.example.com/s300/a.png",
			Labels:    []string{"go", "strings"},
		},
		{Title: "Cats", Link: "https://blog.example.com/cats.html", Labels: []string{}},
	}
}

func TestResultCache_PutGet(t *testing.T) {
	ctx := context.Background()
	c := setupTestCache(t, 0)

	_, err := c.Get(ctx, "blogSearch_cat")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, c.Put(ctx, "blogSearch_cat", sampleResults()))

	got, err := c.Get(ctx, "blogSearch_cat")
	require.NoError(t, err)
	assert.Equal(t, sampleResults(), got)

	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestResultCache_UsageTracksOverwrites(t *testing.T) {
	ctx := context.Background()
	c := setupTestCache(t, 0)

	require.NoError(t, c.Put(ctx, "k", sampleResults()))
	full, err := c.Size(ctx)
	require.NoError(t, err)
	require.Positive(t, full)

	require.NoError(t, c.Put(ctx, "k", sampleResults()[:1]))
	smaller, err := c.Size(ctx)
	require.NoError(t, err)
	assert.Less(t, smaller, full)

	require.NoError(t, c.Put(ctx, "k", sampleResults()))
	again, err := c.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, full, again)
}

func TestResultCache_Quota(t *testing.T) {
	ctx := context.Background()
	probe := setupTestCache(t, 0)
	require.NoError(t, probe.Put(ctx, "a", sampleResults()))
	one, err := probe.Size(ctx)
	require.NoError(t, err)

	c := setupTestCache(t, one+10)
	require.NoError(t, c.Put(ctx, "a", sampleResults()))

	err = c.Put(ctx, "b", sampleResults())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageQuotaExceeded)

	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.NoError(t, c.Put(ctx, "a", sampleResults()), "replacing within quota succeeds")
}

func TestResultCache_OnDisk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := Open(dir, false, 0)
	require.NoError(t, err)
	require.NoError(t, c.Put(ctx, "blogSearch_golang", sampleResults()))
	require.NoError(t, c.Close())

	c, err = Open(dir, false, 0)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Get(ctx, "blogSearch_golang")
	require.NoError(t, err)
	assert.Equal(t, sampleResults(), got)
}

func TestResultCache_ConcurrentDistinctKeys(t *testing.T) {
	ctx := context.Background()
	c := setupTestCache(t, 0)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = c.Put(ctx, fmt.Sprintf("q%d", i), sampleResults())
		}(i)
	}
	wg.Wait()

	written := 0
	for _, err := range errs {
		if err == nil {
			written++
			continue
		}
		// Concurrent usage updates may conflict; conflicts surface as write failures.
		assert.ErrorIs(t, err, domain.ErrStorageWriteFailure)
	}
	n, err := c.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, written, n)
}
