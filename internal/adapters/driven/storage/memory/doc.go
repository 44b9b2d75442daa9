// Package memory provides in-memory implementations of the driven ports.
//
// ResultCache is the fast cache tier used for every session. ConfigStore
// backs settings in tests and when no config directory is writable.
package memory
