package service

import (
	"fmt"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
)

var _ contract.Env = (*env)(nil)

// env is the view of the emulator handed to contract code. It runs on the
// execution unit while the forging goroutine holds the emulator mutex and
// waits for the unit, so it must not lock.
type env struct {
	e *Emulator
}

func (v *env) Balance(ref model.AccountRef) int64 {
	acc, ok := v.e.registry.Lookup(ref)
	if !ok {
		return 0
	}
	return acc.Balance
}

func (v *env) BlockTimestamp() model.Timestamp {
	return v.e.blockStart
}

func (v *env) TxAfter(receiver model.AccountRef, after model.Timestamp) *model.Transaction {
	return v.e.chain.FindNextMessageTo(receiver, after)
}

func (v *env) Send(from, to model.AccountRef, amount int64, payload *model.Register, message string) error {
	to = v.e.registry.Resolve(to.Address).Ref
	if _, err := v.e.submit(from, to, amount, payload, message); err != nil {
		return fmt.Errorf("send from %s: %w", from, err)
	}
	return nil
}
