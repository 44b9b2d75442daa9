package cli

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/feedsearch/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/services"
	normaliser "github.com/custodia-labs/feedsearch/internal/normalisers/blogger"
)

// fakeFeed implements driven.FeedClient.
type fakeFeed struct {
	mu      sync.Mutex
	entries []domain.FeedEntry
	err     error
	calls   int
}

func (f *fakeFeed) Fetch(_ context.Context, _ domain.Query) ([]domain.FeedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.entries, f.err
}

func (f *fakeFeed) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func catEntries(n int) []domain.FeedEntry {
	entries := make([]domain.FeedEntry, n)
	for i := range entries {
		entries[i] = domain.FeedEntry{
			Title:      fmt.Sprintf("Cat %d", i+1),
			Links:      []domain.FeedLink{{Rel: domain.LinkRelAlternate, Href: fmt.Sprintf("https://blog.example/%d.html", i+1)}},
			Summary:    fmt.Sprintf("<p>About <b>Cat</b>, part %d</p>", i+1),
			Categories: []string{"pets"},
		}
	}
	return entries
}

// setupTestServices injects a coordinator over feed with in-memory caches.
func setupTestServices(t *testing.T, feed *fakeFeed) *Services {
	t.Helper()
	resolver := services.NewResolver(services.NewCacheStore(memory.NewResultCache(), nil), feed, normaliser.New())
	coordinator := services.NewCoordinator(resolver, services.CoordinatorConfig{
		Debounce:       10 * time.Millisecond,
		RequestTimeout: time.Second,
	})
	s := &Services{
		Overlay:   coordinator,
		Search:    resolver,
		Navigator: services.NewBrowserNavigator(),
	}
	SetServices(s)
	t.Cleanup(func() {
		coordinator.Close()
		SetServices(nil)
	})
	return s
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestRootCmd_Commands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}

	for _, want := range []string{"search", "tui", "mcp", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"endpoint", "config-dir", "verbose"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, "v", rootCmd.PersistentFlags().Lookup("verbose").Shorthand)
}

func TestRootCmd_Annotations(t *testing.T) {
	assert.Equal(t, needsRuntime, searchCmd.Annotations[annotationNeeds])
	assert.Equal(t, needsRuntime, tuiCmd.Annotations[annotationNeeds])
	assert.Equal(t, needsRuntime, mcpServeCmd.Annotations[annotationNeeds])
	assert.Equal(t, needsConfig, configSetCmd.Annotations[annotationNeeds])
	assert.Empty(t, versionCmd.Annotations[annotationNeeds])
}

func TestBootstrap_KeepsInjectedServices(t *testing.T) {
	s := setupTestServices(t, &fakeFeed{})

	_, err := execute(t, "search", "cat")

	require.NoError(t, err)
	assert.Same(t, s, deps)
}

func TestBootstrap_RequiresEndpoint(t *testing.T) {
	SetServices(nil)
	t.Cleanup(func() { SetServices(nil) })

	_, err := execute(t, "--config-dir", t.TempDir(), "search", "cat")

	assert.ErrorIs(t, err, domain.ErrNoEndpoint)
}

func TestCloseServices(t *testing.T) {
	closed := 0
	SetServices(&Services{Close: func() error {
		closed++
		return nil
	}})
	t.Cleanup(func() { SetServices(nil) })

	closeServices()
	closeServices()

	assert.Equal(t, 1, closed)
}
