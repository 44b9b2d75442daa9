// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FeedClient: Fetches raw entries from the feed endpoint
//   - Normaliser: Transforms raw entries into display records
//   - ResultCache: One cache tier (memory, SQLite or BadgerDB)
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// The durable ResultCache may be a memory tier; the overlay then behaves
// as if every durable write were rejected and nothing survives a restart.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
