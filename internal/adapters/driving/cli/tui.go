package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/feedsearch/internal/adapters/driving/tui"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search overlay",
	Long: `Launch the interactive search overlay.

Results appear as you type, once the query has at least two characters
and typing pauses briefly. Log output goes to a dated feedsearch-*.log in the data
directory while the overlay is open.

Controls:
  ↑/↓, tab      - Select a result
  Enter         - Open the selected post in the browser
  PgDn, Ctrl+N  - Next page
  PgUp, Ctrl+P  - Previous page
  Esc, Ctrl+C   - Close`,
	Annotations: map[string]string{annotationNeeds: needsRuntime},
	RunE:        runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if deps == nil || deps.Overlay == nil {
		return errNotConfigured
	}

	if deps.DataDir != "" {
		restore, err := logger.ToFile(deps.DataDir)
		if err != nil {
			return fmt.Errorf("redirecting logs: %w", err)
		}
		defer func() {
			if err := restore(); err != nil {
				fmt.Fprintf(os.Stderr, "closing log file: %v\n", err)
			}
		}()
	}

	app, err := tui.NewApp(tui.NewPorts(deps.Overlay, deps.Navigator))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
