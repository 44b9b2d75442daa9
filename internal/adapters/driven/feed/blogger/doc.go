// Package blogger fetches search results from a Blogger JSON feed.
//
// The client issues
//
//	GET {endpoint}/feeds/posts/summary?alt=json&q=<query>&max-results=N
//
// and decodes feed.entry into domain.FeedEntry values. Requests are
// throttled with a token bucket and bounded by a context deadline.
package blogger
