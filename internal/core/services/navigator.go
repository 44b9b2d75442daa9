package services

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driving"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

// Ensure BrowserNavigator implements the interface.
var _ driving.Navigator = (*BrowserNavigator)(nil)

// OS constants for runtime.GOOS comparisons.
const (
	osDarwin  = "darwin"
	osLinux   = "linux"
	osWindows = "windows"
)

// BrowserNavigator opens record links in the system browser.
type BrowserNavigator struct {
	goos string
	run  func(ctx context.Context, name string, args ...string) error
}

// NewBrowserNavigator creates a navigator for the current platform.
func NewBrowserNavigator() *BrowserNavigator {
	return &BrowserNavigator{
		goos: runtime.GOOS,
		run: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Start()
		},
	}
}

// Open launches the platform opener for the record's link.
// Only absolute http(s) links are opened.
func (n *BrowserNavigator) Open(ctx context.Context, record domain.DisplayRecord) error {
	u, err := url.Parse(record.Link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: cannot open link %q", domain.ErrInvalidInput, record.Link)
	}

	name, args, err := openCommand(n.goos, u.String())
	if err != nil {
		return err
	}
	logger.Debug("Opening %s with %s", u, name)
	if err := n.run(ctx, name, args...); err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}
	return nil
}

// openCommand returns the command that opens link on goos.
func openCommand(goos, link string) (string, []string, error) {
	switch goos {
	case osDarwin:
		return "open", []string{link}, nil
	case osLinux:
		return "xdg-open", []string{link}, nil
	case osWindows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
