package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/services"
	"github.com/custodia-labs/feedsearch/internal/render"
)

const uriScheme = "feedsearch://"

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective feedsearch configuration",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search-page",
		Description: "First page of results for a query, as overlay HTML",
		MIMEType:    "text/html",
	}, s.handleSearchResource)
}

// settingsInfo is the JSON shape of the settings resource.
type settingsInfo struct {
	Endpoint      string  `json:"endpoint"`
	MaxResults    int     `json:"max_results"`
	TimeoutMS     int64   `json:"timeout_ms"`
	RatePerSecond float64 `json:"rate_per_second"`
	DebounceMS    int64   `json:"debounce_ms"`
	CacheBackend  string  `json:"cache_backend"`
	CacheDir      string  `json:"cache_dir"`
	QuotaBytes    int64   `json:"quota_bytes"`
}

func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	info := settingsInfo{
		Endpoint:      settings.Feed.Endpoint,
		MaxResults:    settings.Feed.MaxResults,
		TimeoutMS:     settings.Feed.Timeout.Milliseconds(),
		RatePerSecond: settings.Feed.RatePerSecond,
		DebounceMS:    settings.Search.Debounce.Milliseconds(),
		CacheBackend:  settings.Cache.Backend.String(),
		CacheDir:      settings.Cache.Dir,
		QuotaBytes:    settings.Cache.QuotaBytes,
	}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	raw := extractQuery(req.Params.URI)
	query, err := domain.ParseQuery(raw)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	status := domain.StatusFailed
	rs, err := s.ports.Search.Search(ctx, query)
	if err == nil {
		status = domain.StatusFor(rs)
	}

	pager := services.NewPaginator(query, rs)

	var b strings.Builder
	if err := render.WriteHTML(&b, render.Render(pager.CurrentPage(), query, pager.State(), status)); err != nil {
		return nil, fmt.Errorf("rendering results: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/html",
			Text:     b.String(),
		}},
	}, nil
}

// extractQuery returns the unescaped query from feedsearch://search/{query}.
func extractQuery(uri string) string {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	q, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return q
}
