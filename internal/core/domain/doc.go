// Package domain defines the core business entities for feedsearch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query: A validated search term, the cache key and highlight source
//   - FeedEntry: One raw article record as returned by the feed endpoint
//   - DisplayRecord: The compact, render-ready form of a feed entry
//   - ResultSet: The ordered records resolved for one query
//   - PaginationState: The page cursor over the active result set
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
