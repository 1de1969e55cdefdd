// Package ledger defines the balance capability the consensus core depends on
// and an in-memory implementation of it.
//
// The core never reads or writes balances directly. It issues new coins,
// credits miners and validators, reserves governance stake and slashes
// penalized accounts through Currency.
package ledger

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-civic/utils/safe"
)

// ErrInsufficientBalance is returned by Reserve when free balance is too low.
var ErrInsufficientBalance = errors.New("insufficient free balance")

// Currency is the external ledger capability.
type Currency interface {
	// FreeBalance returns the spendable balance of who.
	FreeBalance(who common.Address) safe.Int
	// ReservedBalance returns the reserved balance of who.
	ReservedBalance(who common.Address) safe.Int
	// Issue records newly minted coins in the ledger's total issuance.
	Issue(amount safe.Int)
	// Deposit credits newly issued coins to who, creating the account if needed.
	Deposit(who common.Address, amount safe.Int)
	// Reserve moves amount from free to reserved balance.
	Reserve(who common.Address, amount safe.Int) error
	// Unreserve moves up to amount back to free balance and returns the part
	// that could not be unreserved.
	Unreserve(who common.Address, amount safe.Int) safe.Int
	// Slash removes up to amount from who, free balance first, and returns the
	// amount actually removed.
	Slash(who common.Address, amount safe.Int) safe.Int
	// TotalIssuance returns the ledger's view of issued coins.
	TotalIssuance() safe.Int
}
