// Package contract runs contract code bound to emulator accounts.
//
// Every dispatched message runs on its own goroutine so that contract code can
// suspend itself with Sleep and be resumed in a later block. The scheduler
// hands control to exactly one goroutine at a time and waits for it to either
// complete or suspend, so contract code always observes single threaded,
// sequential execution.
package contract

import (
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"go.uber.org/zap"
)

// Contract is the code bound to an account. Implementations embed Base.
type Contract interface {
	// TxReceived is the default entry point, run for messages that are not
	// method calls or whose method call could not be performed.
	TxReceived()
	// BlockFinished runs once after every block in which the contract ran.
	BlockFinished()

	bind(rt *Runtime)
}

// Initializer is implemented by contracts that need to run code when they are
// created. CurrentTx returns the creation transaction while Init runs.
type Initializer interface {
	Init()
}

// Env is the part of the emulator visible to contract code.
type Env interface {
	Balance(ref model.AccountRef) int64
	BlockTimestamp() model.Timestamp
	TxAfter(receiver model.AccountRef, after model.Timestamp) *model.Transaction
	Send(from, to model.AccountRef, amount int64, payload *model.Register, message string) error
}

// Base provides the emulator primitives to contract implementations.
type Base struct {
	rt *Runtime
}

func (b *Base) bind(rt *Runtime) {
	b.rt = rt
}

// BlockFinished does nothing by default.
func (b *Base) BlockFinished() {}

// Address returns the account the contract is bound to.
func (b *Base) Address() model.AccountRef {
	return b.rt.ref
}

// Creator returns the sender of the creation transaction.
func (b *Base) Creator() model.AccountRef {
	return b.rt.creator
}

// CurrentTx returns the message being processed.
func (b *Base) CurrentTx() *model.Transaction {
	return b.rt.currentTx
}

// ActivationFee returns the minimum amount a message needs to run the contract.
func (b *Base) ActivationFee() int64 {
	return b.rt.activationFee
}

// Balance returns the balance of the contract account.
func (b *Base) Balance() int64 {
	return b.rt.env.Balance(b.rt.ref)
}

// BlockTimestamp returns the start of the block being executed.
func (b *Base) BlockTimestamp() model.Timestamp {
	return b.rt.env.BlockTimestamp()
}

// Sleep suspends the running invocation until the first block whose start is
// at or after until. Only one Sleep per invocation is supported; a second
// call returns ErrRepeatedSleep without suspending. Messages arriving while
// the contract sleeps are not dispatched to it: those queued for a later
// block wait for the wake-up, and those already in the block where it fell
// asleep are only reachable through TxAfter.
func (b *Base) Sleep(until model.Timestamp) error {
	return b.rt.sleep(until)
}

// SleepBlocks suspends the running invocation for n blocks.
func (b *Base) SleepBlocks(n uint64) error {
	return b.Sleep(b.BlockTimestamp().AddBlocks(n))
}

// TxAfter returns the first message to the contract after ts, or nil.
func (b *Base) TxAfter(ts model.Timestamp) *model.Transaction {
	return b.rt.env.TxAfter(b.rt.ref, ts)
}

// SendAmount queues a payment from the contract account for the next block.
func (b *Base) SendAmount(to model.AccountRef, amount int64) error {
	return b.rt.env.Send(b.rt.ref, to, amount, nil, "")
}

// SendMessage queues a payment carrying a text message.
func (b *Base) SendMessage(to model.AccountRef, amount int64, message string) error {
	return b.rt.env.Send(b.rt.ref, to, amount, nil, message)
}

// SendRegister queues a payment carrying a register, which may be a method call.
func (b *Base) SendRegister(to model.AccountRef, amount int64, reg model.Register) error {
	return b.rt.env.Send(b.rt.ref, to, amount, &reg, "")
}

// Logger returns the contract logger.
func (b *Base) Logger() *zap.Logger {
	return b.rt.logger
}
