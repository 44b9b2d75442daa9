package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/feedsearch/internal/adapters/driven/storage/codec"
	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
)

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

// ResultCache is the SQLite implementation of driven.ResultCache.
// Entry size is the key length plus the encoded payload length.
type ResultCache struct {
	store *Store
	quota int64
}

// Get retrieves the result set stored under key.
func (c *ResultCache) Get(ctx context.Context, key string) (domain.ResultSet, error) {
	var payload []byte
	err := c.store.db.QueryRowContext(ctx,
		"SELECT payload FROM result_cache WHERE key = ?", key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}

	rs, err := codec.Unmarshal(payload)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", key, err)
	}
	return rs, nil
}

// Put stores rs under key. Writes that would push the total size past
// the quota fail with domain.ErrStorageQuotaExceeded.
func (c *ResultCache) Put(ctx context.Context, key string, rs domain.ResultSet) error {
	payload, err := codec.Marshal(rs)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWriteFailure, err)
	}
	size := int64(len(key) + len(payload))

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domain.ErrStorageWriteFailure, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if c.quota > 0 {
		var used int64
		err := tx.QueryRowContext(ctx,
			"SELECT COALESCE(SUM(size), 0) FROM result_cache WHERE key != ?", key,
		).Scan(&used)
		if err != nil {
			return fmt.Errorf("%w: measuring usage: %w", domain.ErrStorageWriteFailure, err)
		}
		if used+size > c.quota {
			return fmt.Errorf("%w: %q needs %d bytes, %d of %d used",
				domain.ErrStorageQuotaExceeded, key, size, used, c.quota)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO result_cache (key, payload, size, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			size = excluded.size,
			updated_at = excluded.updated_at
	`, key, payload, size)
	if err != nil {
		return fmt.Errorf("%w: writing %q: %w", domain.ErrStorageWriteFailure, key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", domain.ErrStorageWriteFailure, err)
	}
	return nil
}

// Len returns the number of stored entries.
func (c *ResultCache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM result_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// Size returns the total stored size in bytes.
func (c *ResultCache) Size(ctx context.Context) (int64, error) {
	var n int64
	if err := c.store.db.QueryRowContext(ctx, "SELECT COALESCE(SUM(size), 0) FROM result_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("measuring size: %w", err)
	}
	return n, nil
}

// Close closes the underlying store.
func (c *ResultCache) Close() error {
	return c.store.Close()
}
