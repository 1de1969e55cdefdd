package store

import (
	"github.com/Fantom-foundation/lachesis-base/kvdb"
	"github.com/Fantom-foundation/lachesis-base/kvdb/flushable"
	"github.com/Fantom-foundation/lachesis-base/kvdb/memorydb"
	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
)

// Config tunes the store.
type Config struct {
	// BlockCacheSize is the number of decoded blocks kept in memory.
	BlockCacheSize int
}

// DefaultConfig returns the default cache sizes.
func DefaultConfig() Config {
	return Config{BlockCacheSize: 4096}
}

// LiteConfig is used by tests and the lite preset.
func LiteConfig() Config {
	return Config{BlockCacheSize: 64}
}

// Store is the persistent consensus state. All writes go through a Tx, which
// stages them in memory until Commit.
type Store struct {
	db  kvdb.Store
	cfg Config

	cache struct {
		Blocks *lru.Cache
	}

	log logrus.FieldLogger
}

// NewStore wraps db.
func NewStore(db kvdb.Store, cfg Config, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Store{
		db:  db,
		cfg: cfg,
		log: log.WithField("module", "store"),
	}
	s.initCache()
	return s
}

// NewMemStore returns a store over a fresh in-memory database.
func NewMemStore() *Store {
	return NewStore(memorydb.New(), LiteConfig(), nil)
}

func (s *Store) initCache() {
	size := s.cfg.BlockCacheSize
	if size <= 0 {
		size = 1
	}
	c, err := lru.New(size)
	if err != nil {
		s.log.WithError(err).Panic("failed to create block cache")
	}
	s.cache.Blocks = c
}

// Begin opens a staging transaction.
func (s *Store) Begin() *Tx {
	tx := &Tx{
		store: s,
		flush: flushable.Wrap(s.db),
	}
	tx.init()
	return tx
}

// View runs fn against a transaction that is always discarded.
func (s *Store) View(fn func(tx *Tx) error) error {
	tx := s.Begin()
	defer tx.Discard()
	return fn(tx)
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.cache.Blocks.Purge()
	return s.db.Close()
}
