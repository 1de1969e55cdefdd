package integration

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Fantom-foundation/lachesis-base/kvdb"
	"github.com/Fantom-foundation/lachesis-base/kvdb/leveldb"
	"github.com/Fantom-foundation/lachesis-base/kvdb/memorydb"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-civic/civic/genesis"
	"github.com/rony4d/go-civic/consensus/pow"
	"github.com/rony4d/go-civic/engine"
	"github.com/rony4d/go-civic/ledger"
	"github.com/rony4d/go-civic/metrics"
	"github.com/rony4d/go-civic/miner"
	"github.com/rony4d/go-civic/store"
)

// Config is everything MakeNode needs besides the genesis.
type Config struct {
	DataDir      string
	Preset       PresetConfig
	Coinbase     common.Address
	MinerThreads int
}

// Node is an assembled in-process devnet.
type Node struct {
	Engine  *engine.Engine
	Store   *store.Store
	Ledger  *ledger.Memory
	Head    *Head
	Devnet  *Devnet
	Metrics *metrics.Collector
}

// MakeDB opens the backend selected by the preset.
func MakeDB(p PresetConfig, datadir string) (kvdb.Store, error) {
	switch p.DB {
	case "memory", "":
		return memorydb.New(), nil
	case "leveldb":
		path := filepath.Join(datadir, "chaindata")
		if err := os.MkdirAll(path, 0o700); err != nil {
			return nil, fmt.Errorf("create chaindata dir: %w", err)
		}
		db, err := leveldb.New(path, p.CacheMB, p.Handles, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("open leveldb %s: %w", path, err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("unknown db backend: %q (valid: memory, leveldb)", p.DB)
}

// MakeStore opens the consensus store.
func MakeStore(p PresetConfig, datadir string, log logrus.FieldLogger) (*store.Store, error) {
	db, err := MakeDB(p, datadir)
	if err != nil {
		return nil, err
	}
	return store.NewStore(db, store.Config{BlockCacheSize: p.BlockCache}, log), nil
}

// MakeHasher returns the PoW oracle selected by the preset.
func MakeHasher(p PresetConfig) (pow.Hasher, error) {
	params := pow.DefaultArgon2Params()
	if p.LiteHashing {
		params = pow.LiteArgon2Params()
	}
	return pow.HasherByName(p.Hasher, params)
}

// MakeNode assembles store, ledger, engine, miner and metrics and applies the
// genesis. A store that already holds consensus state is resumed instead; the
// reference ledger is in-memory, so balances always restart from genesis.
func MakeNode(cfg Config, g *genesis.Genesis, log logrus.FieldLogger) (*Node, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	hasher, err := MakeHasher(cfg.Preset)
	if err != nil {
		return nil, err
	}
	s, err := MakeStore(cfg.Preset, cfg.DataDir, log)
	if err != nil {
		return nil, err
	}

	led := ledger.NewMemory()
	for _, acc := range g.Accounts {
		led.Endow(acc.Address, acc.Balance)
	}

	head := NewHead(g.Timestamp)
	eng := engine.New(engine.Config{Rules: g.Rules, Hasher: hasher, Log: log}, s, led, head)

	err = eng.InitGenesis(g)
	switch {
	case errors.Is(err, engine.ErrAlreadyInitialized):
		if err := head.Resume(eng); err != nil {
			s.Close()
			return nil, err
		}
		log.WithField("block", head.BlockNumber()).Info("Resumed existing chain")
	case err != nil:
		s.Close()
		return nil, err
	}

	n := &Node{
		Engine: eng,
		Store:  s,
		Ledger: led,
		Head:   head,
	}
	m := miner.New(miner.Config{Threads: cfg.MinerThreads}, hasher, log)
	n.Devnet = NewDevnet(eng, head, m, cfg.Coinbase, log)
	if cfg.Preset.EnableMetrics {
		n.Metrics = metrics.New("civic", log)
	}
	return n, nil
}

// Close releases the store.
func (n *Node) Close() error {
	return n.Store.Close()
}
