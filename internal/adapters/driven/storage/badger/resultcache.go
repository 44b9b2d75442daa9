package badger

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/custodia-labs/feedsearch/internal/adapters/driven/storage/codec"
	"github.com/custodia-labs/feedsearch/internal/core/domain"
	"github.com/custodia-labs/feedsearch/internal/core/ports/driven"
	"github.com/custodia-labs/feedsearch/internal/logger"
)

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

// loggerAdapter routes badger's internal logging to the application logger.
type loggerAdapter struct{}

var _ badger.Logger = loggerAdapter{}

func (loggerAdapter) Errorf(msg string, items ...any)   { logger.Warn("badger: "+msg, items...) }
func (loggerAdapter) Warningf(msg string, items ...any) { logger.Warn("badger: "+msg, items...) }
func (loggerAdapter) Infof(msg string, items ...any)    { logger.Debug("badger: "+msg, items...) }
func (loggerAdapter) Debugf(msg string, items ...any)   { logger.Debug("badger: "+msg, items...) }

// maxConflictRetries bounds retries when concurrent writes race on the usage counter.
const maxConflictRetries = 5

// ResultCache is the BadgerDB implementation of driven.ResultCache.
type ResultCache struct {
	db    *badger.DB
	quota int64
}

// Open opens a result cache in dir, creating it if needed.
// With inMemory set, dir is ignored and nothing touches disk.
// quotaBytes caps the stored size; zero means unbounded.
func Open(dir string, inMemory bool, quotaBytes int64) (*ResultCache, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = loggerAdapter{}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}
	return &ResultCache{db: db, quota: quotaBytes}, nil
}

// Get retrieves the result set stored under key.
func (c *ResultCache) Get(_ context.Context, key string) (domain.ResultSet, error) {
	var payload []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeEntryKey(key))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
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

// Put stores rs under key, enforcing the quota.
func (c *ResultCache) Put(_ context.Context, key string, rs domain.ResultSet) error {
	payload, err := codec.Marshal(rs)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageWriteFailure, err)
	}
	entryKey := makeEntryKey(key)
	size := uint64(len(key) + len(payload))

	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		err = c.db.Update(func(txn *badger.Txn) error {
			return c.put(txn, key, entryKey, payload, size)
		})
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		logger.Debug("badger: conflict writing %q, retrying", key)
	}
	if errors.Is(err, domain.ErrStorageWriteFailure) {
		return err
	}
	if err != nil {
		return fmt.Errorf("%w: writing %q: %w", domain.ErrStorageWriteFailure, key, err)
	}
	return nil
}

func (c *ResultCache) put(txn *badger.Txn, key string, entryKey, payload []byte, size uint64) error {
	used, err := c.usage(txn)
	if err != nil {
		return err
	}

	var previous uint64
	item, err := txn.Get(entryKey)
	switch {
	case err == nil:
		err = item.Value(func(val []byte) error {
			previous = uint64(len(key) + len(val))
			return nil
		})
		if err != nil {
			return err
		}
	case !errors.Is(err, badger.ErrKeyNotFound):
		return err
	}
	if previous > used {
		used = previous
	}

	total := used - previous + size
	if c.quota > 0 && int64(total) > c.quota {
		return fmt.Errorf("%w: %q needs %d bytes, %d of %d used",
			domain.ErrStorageQuotaExceeded, key, size, used-previous, c.quota)
	}

	if err := txn.Set(entryKey, payload); err != nil {
		return err
	}
	return txn.Set([]byte(usageKey), encodeUint64(total))
}

// usage reads the running byte total.
func (c *ResultCache) usage(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get([]byte(usageKey))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var used uint64
	err = item.Value(func(val []byte) error {
		used = decodeUint64(val)
		return nil
	})
	return used, err
}

// Size returns the total stored size in bytes.
func (c *ResultCache) Size(_ context.Context) (int64, error) {
	var used uint64
	err := c.db.View(func(txn *badger.Txn) error {
		var err error
		used, err = c.usage(txn)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("measuring size: %w", err)
	}
	return int64(used), nil
}

// Len returns the number of stored entries.
func (c *ResultCache) Len(_ context.Context) (int, error) {
	n := 0
	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		opts.PrefetchValues = false
		iter := txn.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (c *ResultCache) Close() error {
	return c.db.Close()
}
