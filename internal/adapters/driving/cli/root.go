// Package cli implements the feedsearch command line.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

// version is set by Execute from the build.
var version = "dev"

// Command annotations declaring what a command needs before it runs.
const (
	annotationNeeds = "feedsearch/needs"
	needsConfig     = "config"
	needsRuntime    = "runtime"
)

var (
	flagEndpoint  string
	flagConfigDir string
	flagVerbose   bool
)

// Services holds the driving ports used by commands.
type Services struct {
	Overlay   driving.OverlayService
	Search    driving.SearchService
	Settings  driving.SettingsService
	Navigator driving.Navigator
	Config    driven.ConfigStore

	// DataDir receives the TUI log file.
	DataDir string

	// Close releases the services. Optional.
	Close func() error
}

// deps is populated by bootstrap or SetServices.
var deps *Services

// SetServices injects services, bypassing bootstrap. Passing nil clears them.
func SetServices(s *Services) {
	deps = s
}

var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "feedsearch",
	Short: "Search a blog feed as you type",
	Long: `feedsearch queries a Blogger-style JSON feed and shows matching posts
five at a time. Results are cached in memory and on disk so repeated
queries never hit the network twice.

Run "feedsearch config set feed.endpoint https://yourblog.blogspot.com"
once, then use "feedsearch tui" for the interactive overlay or
"feedsearch search QUERY" for one-off lookups.`,
	SilenceUsage:      true,
	PersistentPreRunE: bootstrap,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "feed endpoint URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.feedsearch)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and releases any services it opened.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// bootstrap builds what the command declares it needs.
// Already injected services are kept.
func bootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	needs := cmd.Annotations[annotationNeeds]
	if needs == "" || deps != nil {
		return nil
	}

	opts := Options{ConfigDir: flagConfigDir, Endpoint: flagEndpoint}
	if needs == needsConfig {
		s, err := LoadConfig(opts)
		if err != nil {
			return err
		}
		deps = s
		return nil
	}

	rt, err := NewRuntime(opts)
	if err != nil {
		return err
	}
	deps = rt.Services()
	return nil
}

func closeServices() {
	if deps == nil || deps.Close == nil {
		return
	}
	if err := deps.Close(); err != nil {
		logger.Warn("closing services: %v", err)
	}
	deps.Close = nil
}
