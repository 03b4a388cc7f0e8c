package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/idilsaglam/mlcheck/internal/model"
)

const boltFileName = "state.db"

var (
	boltBucket = []byte("state")
	boltKey    = []byte("projects")
)

// BoltBackend keeps the document in a bbolt database, one bucket and one
// key. Sturdier than a flat file against partial writes, same single-slot
// contract.
type BoltBackend struct {
	db     *bolt.DB
	logger *slog.Logger
}

// OpenBolt opens (creating if needed) state.db under dir.
func OpenBolt(dir string, logger *slog.Logger) (*BoltBackend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db, err := bolt.Open(filepath.Join(dir, boltFileName), 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	return &BoltBackend{db: db, logger: logger}, nil
}

func (b *BoltBackend) Load() (*model.ProjectsState, bool) {
	var raw []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(boltBucket)
		if bk == nil {
			return nil
		}
		if v := bk.Get(boltKey); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		b.logger.Warn("read state slot", "err", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	return decodeState(raw, b.logger)
}

func (b *BoltBackend) Save(st *model.ProjectsState) {
	raw, ok := encodeState(st, b.logger)
	if !ok {
		return
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk, err := tx.CreateBucketIfNotExists(boltBucket)
		if err != nil {
			return err
		}
		return bk.Put(boltKey, raw)
	})
	if err != nil {
		b.logger.Error("write state slot", "err", err)
	}
}

func (b *BoltBackend) Clear() {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(boltBucket)
		if bk == nil {
			return nil
		}
		return bk.Delete(boltKey)
	})
	if err != nil {
		b.logger.Warn("clear state slot", "err", err)
	}
}

// Close releases the underlying database file.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}
