// Package miner searches for PoW solutions with a pool of worker goroutines.
package miner

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/Fantom-foundation/lachesis-base/hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-civic/consensus/pow"
	"github.com/rony4d/go-civic/utils/safe"
)

// Template is the work for one block.
type Template struct {
	Parent     common.Hash
	Poh        hash.Hash
	Difficulty safe.Int
}

// Solution is a nonce whose digest meets the template's target.
type Solution struct {
	Nonce  []byte
	Digest common.Hash
}

// Config of the miner.
type Config struct {
	// Threads is the number of workers, 0 means one per CPU.
	Threads int
	// StartNonce offsets the search, so miners sharing a template do not
	// produce identical solutions.
	StartNonce uint64
}

// Stats are cumulative since the miner was created.
type Stats struct {
	Hashes    uint64
	Solutions uint64
	Started   time.Time
}

// Miner solves templates. Solve may be called from one goroutine at a time.
type Miner struct {
	cfg    Config
	hasher pow.Hasher

	hashes    atomic.Uint64
	solutions atomic.Uint64
	started   time.Time

	log logrus.FieldLogger
}

// New returns a miner over the given oracle.
func New(cfg Config, h pow.Hasher, log logrus.FieldLogger) *Miner {
	if cfg.Threads < 1 {
		cfg.Threads = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Miner{
		cfg:     cfg,
		hasher:  h,
		started: time.Now(),
		log:     log.WithField("module", "miner"),
	}
}

// Threads returns the worker count.
func (m *Miner) Threads() int { return m.cfg.Threads }

// Solve searches the nonce space until a solution is found or ctx is done.
// Worker i tries StartNonce+i, StartNonce+i+threads, ...
func (m *Miner) Solve(ctx context.Context, tpl Template) (*Solution, error) {
	threads := m.cfg.Threads
	result := make(chan *Solution, 1)
	mineCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	for t := 0; t < threads; t++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			nonce := m.cfg.StartNonce + uint64(id)
			step := uint64(threads)
			var local uint64
			defer func() { m.hashes.Add(local) }()

			for {
				select {
				case <-mineCtx.Done():
					return
				default:
				}
				n := bigendian.Uint64ToBytes(nonce)
				digest := m.hasher.Hash(pow.Preimage(tpl.Parent, n, tpl.Poh))
				local++
				if pow.MeetsTarget(digest, tpl.Difficulty) {
					select {
					case result <- &Solution{Nonce: n, Digest: digest}:
					default:
					}
					return
				}
				nonce += step
				if local%1024 == 0 {
					runtime.Gosched()
				}
			}
		}(t)
	}

	stop := func() {
		cancel()
		wg.Wait()
	}

	select {
	case <-ctx.Done():
		stop()
		return nil, ctx.Err()
	case sol := <-result:
		stop()
		m.solutions.Add(1)
		m.log.WithFields(logrus.Fields{
			"nonce":      common.Bytes2Hex(sol.Nonce),
			"digest":     sol.Digest.TerminalString(),
			"difficulty": tpl.Difficulty,
		}).Debug("Solution found")
		return sol, nil
	}
}

// Stats returns the counters.
func (m *Miner) Stats() Stats {
	return Stats{
		Hashes:    m.hashes.Load(),
		Solutions: m.solutions.Load(),
		Started:   m.started,
	}
}

// HashRate returns hashes per second since creation.
func (m *Miner) HashRate() float64 {
	elapsed := time.Since(m.started).Seconds()
	if elapsed < 1 {
		return 0
	}
	return float64(m.hashes.Load()) / elapsed
}
