// Package ledger keeps the accounts and the block chain of an emulator.
package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"go.uber.org/zap"
)

var (
	// ErrAccountExists is returned when creating an address that is already known.
	ErrAccountExists = errors.New("account already exists")
	// ErrNegativeBalance is returned when an operation would leave a balance below zero.
	ErrNegativeBalance = errors.New("negative balance")
	// ErrUnknownAccount is returned for references the registry never issued.
	ErrUnknownAccount = errors.New("unknown account")
)

// Decoder turns address text into an account id.
type Decoder interface {
	Decode(text string) (model.AccountID, error)
}

// Account is a balance holder, optionally bound to a contract.
type Account struct {
	Ref      model.AccountRef
	Balance  int64
	Contract *contract.Runtime
}

// IsContract reports whether a contract is bound to the account.
func (a *Account) IsContract() bool {
	return a.Contract != nil
}

// Registry owns every account of an emulator, keyed by address text.
type Registry struct {
	decoder  Decoder
	logger   *zap.Logger
	accounts map[string]*Account
	order    []*Account
}

// NewRegistry creates an empty registry.
func NewRegistry(decoder Decoder, logger *zap.Logger) (*Registry, error) {
	if decoder == nil {
		return nil, errors.New("registry decoder is required")
	}
	if logger == nil {
		return nil, errors.New("registry logger is required")
	}
	return &Registry{
		decoder:  decoder,
		logger:   logger.Named("registry"),
		accounts: make(map[string]*Account),
	}, nil
}

// Resolve returns the account for address text, creating it on first use.
// Text that cannot be decoded still gets an account, with ID zero.
func (r *Registry) Resolve(text string) *Account {
	if acc, ok := r.accounts[text]; ok {
		return acc
	}

	id, err := r.decoder.Decode(text)
	if err != nil {
		r.logger.Warn("address decode failed, using placeholder account",
			zap.String("address", text),
			zap.Error(err),
		)
		id = 0
	}

	acc := &Account{Ref: model.AccountRef{ID: id, Address: text}}
	r.accounts[text] = acc
	r.order = append(r.order, acc)
	return acc
}

// Create registers a new account with an initial balance.
func (r *Registry) Create(text string, balance int64) (*Account, error) {
	if _, ok := r.accounts[text]; ok {
		return nil, fmt.Errorf("%s: %w", text, ErrAccountExists)
	}
	if balance < 0 {
		return nil, fmt.Errorf("%s: %w", text, ErrNegativeBalance)
	}
	acc := r.Resolve(text)
	acc.Balance = balance
	return acc, nil
}

// Lookup finds the account of a reference issued by this registry.
func (r *Registry) Lookup(ref model.AccountRef) (*Account, bool) {
	acc, ok := r.accounts[ref.Address]
	return acc, ok
}

// Credit adds amount to the balance outside of any transaction.
func (r *Registry) Credit(ref model.AccountRef, amount int64) error {
	acc, ok := r.Lookup(ref)
	if !ok {
		return fmt.Errorf("%s: %w", ref, ErrUnknownAccount)
	}
	if acc.Balance+amount < 0 {
		return fmt.Errorf("credit %d to %s: %w", amount, ref, ErrNegativeBalance)
	}
	acc.Balance += amount
	return nil
}

// Transfer moves up to amount from one account to another and returns the
// amount to record. Transfers never fail for lack of funds, they shrink to
// the sender balance or to what the receiver can still hold. A non-positive
// amount moves nothing and is returned unchanged.
func (r *Registry) Transfer(from, to *Account, amount int64) int64 {
	if amount <= 0 {
		return amount
	}
	applied := min(amount, from.Balance)
	if from != to {
		applied = min(applied, math.MaxInt64-to.Balance)
	}
	from.Balance -= applied
	to.Balance += applied
	return applied
}

// Accounts lists the accounts in creation order.
func (r *Registry) Accounts() []*Account {
	out := make([]*Account, len(r.order))
	copy(out, r.order)
	return out
}

// TotalBalance sums the balances of every account.
func (r *Registry) TotalBalance() int64 {
	var total int64
	for _, acc := range r.order {
		total += acc.Balance
	}
	return total
}
