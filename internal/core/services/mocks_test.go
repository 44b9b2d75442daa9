package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/feedsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockFeedClient implements driven.FeedClient for testing.
type mockFeedClient struct {
	mu       sync.Mutex
	entries  map[string][]domain.FeedEntry
	fetchErr error
	calls    []string

	// release blocks Fetch for a query until the channel is closed.
	release map[string]chan struct{}
	// started receives each query as Fetch begins, when set.
	started chan string
	// ignoreCtx makes blocked fetches complete even after cancellation.
	ignoreCtx bool
	// cancelled records queries whose context was done when Fetch returned.
	cancelled []string
}

var _ driven.FeedClient = (*mockFeedClient)(nil)

func newMockFeedClient() *mockFeedClient {
	return &mockFeedClient{
		entries: make(map[string][]domain.FeedEntry),
		release: make(map[string]chan struct{}),
	}
}

func (m *mockFeedClient) Fetch(ctx context.Context, query domain.Query) ([]domain.FeedEntry, error) {
	q := query.String()

	m.mu.Lock()
	m.calls = append(m.calls, q)
	entries := m.entries[q]
	err := m.fetchErr
	release := m.release[q]
	started := m.started
	ignoreCtx := m.ignoreCtx
	m.mu.Unlock()

	if started != nil {
		started <- q
	}
	if release != nil {
		if ignoreCtx {
			<-release
		} else {
			select {
			case <-release:
			case <-ctx.Done():
				m.markCancelled(q)
				return nil, ctx.Err()
			}
		}
	}
	if ctx.Err() != nil {
		m.markCancelled(q)
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (m *mockFeedClient) markCancelled(q string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelled = append(m.cancelled, q)
}

func (m *mockFeedClient) set(query string, entries []domain.FeedEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[query] = entries
}

func (m *mockFeedClient) block(query string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan struct{})
	m.release[query] = ch
	return ch
}

func (m *mockFeedClient) failWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErr = err
}

func (m *mockFeedClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockFeedClient) Cancelled() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.cancelled))
	copy(out, m.cancelled)
	return out
}

// feedEntries builds n well-formed entries whose titles start with prefix.
func feedEntries(prefix string, n int) []domain.FeedEntry {
	entries := make([]domain.FeedEntry, n)
	for i := range entries {
		entries[i] = domain.FeedEntry{
			Title: fmt.Sprintf("%s %d", prefix, i+1),
			Links: []domain.FeedLink{
				{Rel: "replies", Href: "https://blog.example.com/feeds/comments"},
				{Rel: domain.LinkRelAlternate, Href: fmt.Sprintf("https://blog.example.com/%d.html", i+1)},
			},
			Summary:      fmt.Sprintf("<p>About %s, part %d</p>", prefix, i+1),
			ThumbnailURL: "https://img.example.com/s72-c/pic.jpg",
			Categories:   []string{"go", "search", "cache", "extra"},
		}
	}
	return entries
}

// mockResultCache wraps the memory tier and injects failures.
type mockResultCache struct {
	*memory.ResultCache

	mu     sync.Mutex
	getErr error
	putErr error
	puts   []string
}

var _ driven.ResultCache = (*mockResultCache)(nil)

func newMockResultCache() *mockResultCache {
	return &mockResultCache{ResultCache: memory.NewResultCache()}
}

func (m *mockResultCache) Get(ctx context.Context, key string) (domain.ResultSet, error) {
	m.mu.Lock()
	err := m.getErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.ResultCache.Get(ctx, key)
}

func (m *mockResultCache) Put(ctx context.Context, key string, rs domain.ResultSet) error {
	m.mu.Lock()
	m.puts = append(m.puts, key)
	err := m.putErr
	m.mu.Unlock()
	if err != nil {
		return err
	}
	return m.ResultCache.Put(ctx, key, rs)
}

func (m *mockResultCache) Puts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.puts))
	copy(out, m.puts)
	return out
}
