package mcp

import (
	"context"
	"fmt"

	"github.com/custodia-labs/feedsearch/internal/core/domain"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	results domain.ResultSet
	err     error
	queries []domain.Query
}

func (m *mockSearchService) Search(_ context.Context, q domain.Query) (domain.ResultSet, error) {
	m.queries = append(m.queries, q)
	return m.results, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings domain.Settings
	err      error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	if m.err != nil {
		return nil, m.err
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(*domain.Settings) error               { return nil }
func (m *mockSettingsService) SetEndpoint(string) error                  { return nil }
func (m *mockSettingsService) SetCacheBackend(domain.CacheBackend) error { return nil }
func (m *mockSettingsService) Validate() error                           { return nil }
func (m *mockSettingsService) GetDefaults() domain.Settings              { return domain.DefaultSettings() }

func records(n int) domain.ResultSet {
	rs := make(domain.ResultSet, n)
	for i := range rs {
		rs[i] = domain.DisplayRecord{
			Title:   fmt.Sprintf("Cat post %d", i+1),
			Link:    fmt.Sprintf("https://blog.example/%d", i+1),
			Summary: "about cats",
		}
	}
	return rs
}
