package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
)

const testDebounce = 40 * time.Millisecond

func newTestCoordinator(t *testing.T, feed *mockFeedClient) (*Coordinator, *mockResultCache) {
	t.Helper()
	r, durable := newTestResolver(feed)
	c := NewCoordinator(r, CoordinatorConfig{
		Debounce:       testDebounce,
		RequestTimeout: time.Second,
	})
	t.Cleanup(c.Close)
	return c, durable
}

// sessionRecorder collects sessions delivered to a listener.
type sessionRecorder struct {
	mu       sync.Mutex
	sessions []driving.QuerySession
}

func (r *sessionRecorder) record(s driving.QuerySession) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = append(r.sessions, s)
}

func (r *sessionRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *sessionRecorder) Last() driving.QuerySession {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sessions) == 0 {
		return nil
	}
	return r.sessions[len(r.sessions)-1]
}

func TestNewCoordinator_Defaults(t *testing.T) {
	r, _ := newTestResolver(newMockFeedClient())
	c := NewCoordinator(r, CoordinatorConfig{Debounce: -1})
	defer c.Close()

	assert.Equal(t, DefaultCoordinatorConfig(), c.cfg)
	assert.Equal(t, domain.StateIdle, c.State())
	assert.Nil(t, c.Active())
}

func TestCoordinator_OnInput_ShortQueryDoesNothing(t *testing.T) {
	feed := newMockFeedClient()
	c, _ := newTestCoordinator(t, feed)

	for _, raw := range []string{"", "a", "  b  ", "\t"} {
		c.OnInput(raw)
	}
	time.Sleep(3 * testDebounce)

	assert.Empty(t, feed.Calls())
	assert.Nil(t, c.Active())
	assert.Equal(t, domain.StateIdle, c.State())
}

func TestCoordinator_OnInput_ShortQueryKeepsActiveSession(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("golang", feedEntries("Golang", 2))
	c, _ := newTestCoordinator(t, feed)

	_, err := c.Resolve(context.Background(), "golang")
	require.NoError(t, err)

	c.OnInput("g")
	time.Sleep(3 * testDebounce)

	require.NotNil(t, c.Active())
	assert.Equal(t, domain.Query("golang"), c.Active().Resolution().Query)
	assert.Equal(t, domain.StateResolved, c.State())
}

func TestCoordinator_OnInput_DebounceCollapsesBurst(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("golang", feedEntries("Golang", 7))
	c, _ := newTestCoordinator(t, feed)

	for _, raw := range []string{"go", "gol", "gola", "golan", "golang"} {
		c.OnInput(raw)
		assert.Equal(t, domain.StateDebouncing, c.State())
	}

	require.Eventually(t, func() bool {
		return c.State() == domain.StateResolved
	}, 2*time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"golang"}, feed.Calls())
	active := c.Active()
	require.NotNil(t, active)
	assert.Equal(t, domain.Query("golang"), active.Resolution().Query)
	assert.Len(t, active.CurrentPage(), 5)
}

func TestCoordinator_OnInput_TrimsQuery(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("cat", feedEntries("Cat", 1))
	c, _ := newTestCoordinator(t, feed)

	c.OnInput("  cat  ")

	require.Eventually(t, func() bool { return c.Active() != nil }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"cat"}, feed.Calls())
}

func TestCoordinator_Subscribe(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("cat", feedEntries("Cat", 2))
	feed.set("dog", feedEntries("Dog", 1))
	c, _ := newTestCoordinator(t, feed)

	rec := &sessionRecorder{}
	unsubscribe := c.Subscribe(rec.record)

	c.OnInput("cat")
	require.Eventually(t, func() bool { return rec.Len() == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, domain.Query("cat"), rec.Last().Resolution().Query)
	assert.NotEmpty(t, rec.Last().Resolution().ID)

	unsubscribe()
	unsubscribe()

	_, err := c.Resolve(context.Background(), "dog")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Len())
}

func TestCoordinator_Resolve_Idempotent(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("cat", feedEntries("Cat", 3))
	c, durable := newTestCoordinator(t, feed)
	ctx := context.Background()

	first, err := c.Resolve(ctx, "cat")
	require.NoError(t, err)
	second, err := c.Resolve(ctx, "cat")
	require.NoError(t, err)

	assert.Equal(t, []string{"cat"}, feed.Calls())
	assert.False(t, first.Resolution().FromCache)
	assert.True(t, second.Resolution().FromCache)
	assert.Equal(t, first.Resolution().Results, second.Resolution().Results)
	assert.Greater(t, second.Resolution().Token, first.Resolution().Token)
	assert.NotEqual(t, first.Resolution().ID, second.Resolution().ID)
	assert.Equal(t, []string{DurableKeyPrefix + "cat"}, durable.Puts())
}

func TestCoordinator_Resolve_ShortQuery(t *testing.T) {
	feed := newMockFeedClient()
	c, _ := newTestCoordinator(t, feed)

	_, err := c.Resolve(context.Background(), " x ")
	assert.ErrorIs(t, err, domain.ErrQueryTooShort)
	assert.Empty(t, feed.Calls())
}

func TestCoordinator_Resolve_FailureIsDistinctFromEmpty(t *testing.T) {
	feed := newMockFeedClient()
	c, durable := newTestCoordinator(t, feed)
	ctx := context.Background()

	empty, err := c.Resolve(ctx, "zzzz")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEmpty, empty.Resolution().Status)
	assert.NoError(t, empty.Resolution().Err)

	feed.failWith(errors.New("dial tcp: timeout"))
	failed, err := c.Resolve(ctx, "cat")
	require.NoError(t, err)

	res := failed.Resolution()
	assert.True(t, res.Failed())
	assert.Equal(t, domain.StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, domain.ErrNetworkFailure)
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
	assert.Empty(t, failed.CurrentPage())
	assert.Equal(t, []string{DurableKeyPrefix + "zzzz"}, durable.Puts(), "failures are not cached")
}

func TestCoordinator_Resolve_FailureIsNotRetried(t *testing.T) {
	feed := newMockFeedClient()
	feed.failWith(errors.New("boom"))
	c, _ := newTestCoordinator(t, feed)

	_, err := c.Resolve(context.Background(), "cat")
	require.NoError(t, err)
	time.Sleep(3 * testDebounce)

	assert.Len(t, feed.Calls(), 1)
}

func TestCoordinator_StaleResultNeverBecomesActive(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("slow", feedEntries("Slow", 3))
	feed.set("fast", feedEntries("Fast", 1))
	feed.started = make(chan string, 4)
	feed.ignoreCtx = true
	release := feed.block("slow")
	c, durable := newTestCoordinator(t, feed)

	rec := &sessionRecorder{}
	c.Subscribe(rec.record)

	slowErr := make(chan error, 1)
	go func() {
		_, err := c.Resolve(context.Background(), "slow")
		slowErr <- err
	}()
	require.Equal(t, "slow", <-feed.started)

	fast, err := c.Resolve(context.Background(), "fast")
	require.NoError(t, err)
	require.Equal(t, "fast", <-feed.started)

	close(release)
	assert.ErrorIs(t, <-slowErr, domain.ErrStaleResult)

	active := c.Active()
	require.NotNil(t, active)
	assert.Equal(t, domain.Query("fast"), active.Resolution().Query)
	assert.Same(t, fast, active)
	assert.Equal(t, 1, rec.Len())
	assert.Equal(t, []string{"slow"}, feed.Cancelled())
	assert.NotContains(t, durable.Puts(), DurableKeyPrefix+"slow")
	assert.Equal(t, domain.StateResolved, c.State())
}

func TestCoordinator_NewResolutionCancelsInFlight(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("fast", feedEntries("Fast", 1))
	feed.started = make(chan string, 4)
	feed.block("slow")
	c, _ := newTestCoordinator(t, feed)

	slowErr := make(chan error, 1)
	go func() {
		_, err := c.Resolve(context.Background(), "slow")
		slowErr <- err
	}()
	require.Equal(t, "slow", <-feed.started)

	_, err := c.Resolve(context.Background(), "fast")
	require.NoError(t, err)

	select {
	case err := <-slowErr:
		assert.ErrorIs(t, err, domain.ErrStaleResult)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight request was not cancelled")
	}
	assert.Equal(t, []string{"slow"}, feed.Cancelled())
}

func TestCoordinator_InputSupersedesResolvingQuery(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("first", feedEntries("First", 2))
	feed.set("second", feedEntries("Second", 2))
	feed.started = make(chan string, 4)
	release := feed.block("first")
	c, _ := newTestCoordinator(t, feed)

	c.OnInput("first")
	require.Equal(t, "first", <-feed.started)
	assert.Equal(t, domain.StateResolving, c.State())

	c.OnInput("second")
	close(release)

	require.Eventually(t, func() bool {
		a := c.Active()
		return a != nil && a.Resolution().Query == "second"
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, feed.Calls())
}

func TestCoordinator_Close(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("cat", feedEntries("Cat", 1))
	c, _ := newTestCoordinator(t, feed)

	c.OnInput("cat")
	c.Close()
	c.Close()
	time.Sleep(3 * testDebounce)

	assert.Empty(t, feed.Calls())
	assert.Nil(t, c.Active())

	_, err := c.Resolve(context.Background(), "cat")
	assert.ErrorIs(t, err, ErrCoordinatorClosed)
}

func TestCoordinator_EndToEndPagination(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("golang", feedEntries("Golang", 7))
	c, _ := newTestCoordinator(t, feed)

	s, err := c.Resolve(context.Background(), "golang")
	require.NoError(t, err)

	state := s.Pagination()
	assert.Equal(t, 7, state.Total)
	assert.Equal(t, 2, state.TotalPages())
	require.Len(t, s.CurrentPage(), 5)
	assert.Equal(t, "Golang 1", s.CurrentPage()[0].Title)

	require.True(t, s.Next())
	require.Len(t, s.CurrentPage(), 2)
	assert.Equal(t, "Golang 6", s.CurrentPage()[0].Title)
	assert.False(t, s.Next())

	require.True(t, s.Prev())
	assert.Equal(t, "Golang 1", s.CurrentPage()[0].Title)
	assert.Len(t, feed.Calls(), 1, "paging never re-fetches")
}

func TestCoordinator_CommitResetsPage(t *testing.T) {
	feed := newMockFeedClient()
	feed.set("golang", feedEntries("Golang", 7))
	c, _ := newTestCoordinator(t, feed)
	ctx := context.Background()

	s, err := c.Resolve(ctx, "golang")
	require.NoError(t, err)
	s.Next()

	again, err := c.Resolve(ctx, "golang")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Pagination().PageIndex)
}
