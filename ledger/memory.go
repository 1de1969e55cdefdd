package ledger

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/utils/safe"
)

type account struct {
	free     safe.Int
	reserved safe.Int
}

// Memory is a Currency backed by a map. It is safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	accounts map[common.Address]*account
	issuance safe.Int
}

// NewMemory returns an empty ledger.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[common.Address]*account)}
}

// Endow credits a genesis balance and counts it as issued.
func (m *Memory) Endow(who common.Address, amount safe.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.get(who).free = m.get(who).free.Add(amount)
	m.issuance = m.issuance.Add(amount)
}

func (m *Memory) get(who common.Address) *account {
	a, ok := m.accounts[who]
	if !ok {
		a = &account{}
		m.accounts[who] = a
	}
	return a
}

func (m *Memory) FreeBalance(who common.Address) safe.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[who]; ok {
		return a.free
	}
	return safe.Zero()
}

func (m *Memory) ReservedBalance(who common.Address) safe.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[who]; ok {
		return a.reserved
	}
	return safe.Zero()
}

func (m *Memory) Issue(amount safe.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issuance = m.issuance.Add(amount)
}

func (m *Memory) Deposit(who common.Address, amount safe.Int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.get(who)
	a.free = a.free.Add(amount)
}

func (m *Memory) Reserve(who common.Address, amount safe.Int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.get(who)
	if a.free.Lt(amount) {
		return ErrInsufficientBalance
	}
	a.free = a.free.Sub(amount)
	a.reserved = a.reserved.Add(amount)
	return nil
}

func (m *Memory) Unreserve(who common.Address, amount safe.Int) safe.Int {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.get(who)
	moved := safe.Min(a.reserved, amount)
	a.reserved = a.reserved.Sub(moved)
	a.free = a.free.Add(moved)
	return amount.Sub(moved)
}

func (m *Memory) Slash(who common.Address, amount safe.Int) safe.Int {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.get(who)
	fromFree := safe.Min(a.free, amount)
	a.free = a.free.Sub(fromFree)
	fromReserved := safe.Min(a.reserved, amount.Sub(fromFree))
	a.reserved = a.reserved.Sub(fromReserved)
	slashed := fromFree.Add(fromReserved)
	m.issuance = m.issuance.Sub(slashed)
	return slashed
}

func (m *Memory) TotalIssuance() safe.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.issuance
}
