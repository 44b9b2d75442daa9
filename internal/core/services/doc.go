// Package services implements the driving port interfaces.
// Services contain the core search logic and orchestrate
// calls to driven ports (adapters).
//
// The Coordinator drives the incremental overlay: debounced input,
// two-tier caching, cancellation of superseded fetches and pagination
// of the committed session. The Resolver serves one-shot searches.
package services
