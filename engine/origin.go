package engine

import "github.com/ethereum/go-ethereum/common"

// Origin identifies who dispatched a call.
type Origin struct {
	root    bool
	account common.Address
}

// Root is the administrative origin.
func Root() Origin { return Origin{root: true} }

// Signed is an origin backed by an account.
func Signed(a common.Address) Origin { return Origin{account: a} }

// IsRoot reports whether o is the administrative origin.
func (o Origin) IsRoot() bool { return o.root }

// Account returns the signing account, or the zero address for Root.
func (o Origin) Account() common.Address { return o.account }
