// Package engine is the consensus core. It exposes the atomic entry points
// (PoW submission, governance, orphan attestation, penalties), the per-block
// hook and read-only queries, and publishes notices on a feed.
//
// Every entry point runs against a staging transaction. If the call fails,
// the transaction is dropped and no notice is published. Ledger calls are made
// only after every check of a call has passed.
package engine

import (
	"fmt"
	"sync"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/event"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-civic/civic"
	"github.com/rony4d/go-civic/civic/genesis"
	"github.com/rony4d/go-civic/consensus/pow"
	"github.com/rony4d/go-civic/governance"
	"github.com/rony4d/go-civic/inter"
	"github.com/rony4d/go-civic/ledger"
	"github.com/rony4d/go-civic/store"
)

// Config bundles the engine's collaborators that are not storage.
type Config struct {
	Rules  civic.Rules
	Hasher pow.Hasher
	Log    logrus.FieldLogger
}

// Engine is safe for concurrent use. Calls are serialized.
type Engine struct {
	rules  civic.Rules
	hasher pow.Hasher
	store  *store.Store
	ledger ledger.Currency
	chain  Chain
	gov    *governance.Governor

	// rulesErr is set when Config.Rules fail validation. Every call then
	// returns it instead of running.
	rulesErr error

	mu   sync.Mutex
	feed event.Feed

	log logrus.FieldLogger
}

// New returns an engine. Apply a genesis with InitGenesis before use. Invalid
// rules are not reported here; every later call fails with ErrInvalidRules.
func New(cfg Config, s *store.Store, cur ledger.Currency, chain Chain) *Engine {
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = pow.NewArgon2id(pow.DefaultArgon2Params())
	}
	var rulesErr error
	if err := cfg.Rules.Validate(); err != nil {
		rulesErr = fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	return &Engine{
		rules:  cfg.Rules,
		hasher: hasher,
		store:  s,
		ledger: cur,
		chain:  chain,
		gov:    governance.New(cfg.Rules, cur),
		log:    log.WithField("module", "engine"),

		rulesErr: rulesErr,
	}
}

// Rules returns the consensus rules.
func (e *Engine) Rules() civic.Rules { return e.rules }

// Hasher returns the PoW oracle.
func (e *Engine) Hasher() pow.Hasher { return e.hasher }

// SubscribeEvents delivers every published notice to ch. Delivery is
// synchronous, so a subscriber must keep reading and must not call back into
// the engine from the receiving goroutine while it holds a notice.
func (e *Engine) SubscribeEvents(ch chan<- inter.Envelope) event.Subscription {
	return e.feed.Subscribe(ch)
}

// InitGenesis writes the initial consensus state. Genesis balances must be
// credited to the ledger by the caller; they are counted into total supply
// here. The genesis rules must equal the rules the engine was created with.
func (e *Engine) InitGenesis(g *genesis.Genesis) error {
	if e.rulesErr != nil {
		return e.rulesErr
	}
	if err := g.Validate(); err != nil {
		return err
	}
	if g.Rules != e.rules {
		return ErrRulesMismatch
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	tx := e.store.Begin()
	defer tx.Discard()

	existing, err := tx.GetChainState()
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrAlreadyInitialized
	}

	st := &inter.ChainState{
		TotalSupply:        g.TotalAllocated(),
		CurrentBlockReward: g.Rules.Economy.BlockReward,
		BlocksPerHalving:   g.Rules.Economy.HalvingPeriod(),
		CurrentDifficulty:  g.Rules.Difficulty.Initial,
		WindowStartTime:    g.Timestamp,
	}
	st.MaxSupplyReached = !st.TotalSupply.Lt(g.Rules.Economy.MaxSupply)
	for _, x := range g.Experts {
		if err := tx.SetExpert(&inter.VerifiedExpert{
			Account:   x.Address,
			Expertise: []byte(x.Expertise),
			Accuracy:  inter.PerbillOne,
		}); err != nil {
			return err
		}
	}
	if err := tx.SetChainState(st); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{
		"network":    g.Rules.Name,
		"supply":     st.TotalSupply,
		"reward":     st.CurrentBlockReward,
		"difficulty": st.CurrentDifficulty,
	}).Info("Applied genesis")
	return nil
}

// txn is the working set of one entry point.
type txn struct {
	db     *store.Tx
	st     *inter.ChainState
	block  idx.Block
	events []inter.Event
}

func (t *txn) emit(ev inter.Event) {
	t.events = append(t.events, ev)
}

// apply runs fn atomically. Staged writes are committed and notices published
// only if fn succeeds.
func (e *Engine) apply(op string, fn func(t *txn) error) error {
	if e.rulesErr != nil {
		return e.rulesErr
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	db := e.store.Begin()
	st, err := db.GetChainState()
	if err != nil {
		db.Discard()
		return err
	}
	if st == nil {
		db.Discard()
		return ErrNotInitialized
	}
	t := &txn{db: db, st: st, block: e.chain.BlockNumber()}

	if err := fn(t); err != nil {
		db.Discard()
		e.log.WithFields(logrus.Fields{"op": op, "block": t.block}).WithError(err).Debug("Call rejected")
		return err
	}
	if err := db.SetChainState(t.st); err != nil {
		db.Discard()
		return err
	}
	writes := db.Pending()
	if err := db.Commit(); err != nil {
		e.log.WithFields(logrus.Fields{"op": op, "block": t.block}).WithError(err).Error("Failed to commit state")
		return err
	}
	e.log.WithFields(logrus.Fields{"op": op, "block": t.block, "writes": writes, "events": len(t.events)}).Trace("Call committed")
	for _, ev := range t.events {
		e.feed.Send(inter.Envelope{Block: t.block, Event: ev})
	}
	return nil
}
