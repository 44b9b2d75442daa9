package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/services"
)

// SearchInput is the input schema for the feed_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"search term, at least 2 characters"`
	Page  int    `json:"page,omitempty" jsonschema:"1-based page number (default 1, 5 records per page)"`
}

// SearchOutput is the output schema for the feed_search tool.
type SearchOutput struct {
	Query  string       `json:"query"`
	Status string       `json:"status"`
	Error  string       `json:"error,omitempty"`
	Page   int          `json:"page"`
	Pages  int          `json:"pages"`
	Total  int          `json:"total"`
	Items  []ItemOutput `json:"items"`
}

// ItemOutput is one record on the requested page.
type ItemOutput struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Summary   string   `json:"summary"`
	Thumbnail string   `json:"thumbnail,omitempty"`
	Labels    []string `json:"labels"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "feed_search",
		Description: "Search the configured blog feed and return one page of matching posts",
	}, s.handleSearch)
}

// handleSearch resolves the query and returns the requested page.
// A failed fetch is reported in the output, not as a tool error.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	query, err := domain.ParseQuery(input.Query)
	if err != nil {
		return nil, SearchOutput{}, fmt.Errorf("query %q: %w", input.Query, err)
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}

	output := SearchOutput{
		Query: query.String(),
		Page:  page,
		Items: []ItemOutput{},
	}

	rs, err := s.ports.Search.Search(ctx, query)
	if err != nil {
		output.Status = domain.StatusFailed.String()
		output.Error = err.Error()
		return nil, output, nil
	}

	pager := services.NewPaginator(query, rs)
	output.Status = domain.StatusFor(rs).String()
	output.Total = rs.Len()
	output.Pages = pager.TotalPages()

	if rs.Len() == 0 {
		return nil, output, nil
	}
	if !pager.Seek(page - 1) {
		return nil, SearchOutput{}, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, output.Pages)
	}

	for _, rec := range pager.CurrentPage() {
		labels := rec.Labels
		if labels == nil {
			labels = []string{}
		}
		output.Items = append(output.Items, ItemOutput{
			Title:     rec.Title,
			Link:      rec.Link,
			Summary:   rec.Summary,
			Thumbnail: rec.Thumbnail,
			Labels:    labels,
		})
	}
	return nil, output, nil
}
