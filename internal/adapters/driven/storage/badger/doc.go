// Package badger provides a BadgerDB-backed durable cache tier.
//
// Entries are stored under "rc:"+key as compact JSON. A running byte
// total is kept in the same transaction as each write so the quota
// check never scans the keyspace.
package badger
