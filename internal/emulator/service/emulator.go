// Package service drives the emulated ledger one block at a time.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/ledger"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

var (
	// ErrForgeInProgress is returned when AdvanceBlock is called while another
	// forge step is running.
	ErrForgeInProgress = errors.New("forge step already in progress")
	// ErrUnusable wraps the fault that stopped the emulator. Once returned,
	// every later forge step fails with it. A contract that caused a handshake
	// timeout keeps its goroutine; Close reports it but cannot stop it.
	ErrUnusable = errors.New("emulator is unusable")
	// ErrEmulatorClosed is returned after Close.
	ErrEmulatorClosed = errors.New("emulator is closed")
	// ErrHandshakeTimeout is returned when a contract neither completes nor
	// suspends in time.
	ErrHandshakeTimeout = contract.ErrHandshakeTimeout
	// ErrUnknownContractType is the instantiation fault of an unknown type tag.
	ErrUnknownContractType = contract.ErrUnknownContractType
	// ErrNotInvoked is returned by Sleep outside of a dispatched message.
	ErrNotInvoked = contract.ErrNotInvoked
	// ErrRepeatedSleep is returned by a second Sleep in the same invocation.
	ErrRepeatedSleep = contract.ErrRepeatedSleep
)

// Emulator owns the accounts and the chain and forges blocks on request.
//
// Public methods are safe for concurrent use. Contract code reaches the
// emulator only through contract.Env and must not call these methods.
type Emulator struct {
	logger  *zap.Logger
	catalog ContractCatalog
	metrics EmulatorMetrics
	sink    BlockSink

	handshakeTimeout time.Duration

	mu       sync.Mutex
	forging  atomic.Bool
	closed   bool
	fault    error
	registry *ledger.Registry
	chain    *ledger.Chain
	// blockStart is the start of the block being forged, as seen by contracts.
	blockStart model.Timestamp
	env        *env
}

// New builds an emulator and forges its genesis block.
func New(decoder AddressDecoder, catalog ContractCatalog, logger *zap.Logger, opts ...Option) (*Emulator, error) {
	if catalog == nil {
		return nil, errors.New("emulator contract catalog is required")
	}
	if logger == nil {
		return nil, errors.New("emulator logger is required")
	}
	logger = logger.Named("emulator")

	registry, err := ledger.NewRegistry(decoder, logger)
	if err != nil {
		return nil, fmt.Errorf("new registry: %w", err)
	}

	e := &Emulator{
		logger:           logger,
		catalog:          catalog,
		metrics:          nopMetrics{},
		handshakeTimeout: defaultHandshakeTimeout,
		registry:         registry,
		chain:            ledger.NewChain(),
	}
	e.env = &env{e: e}
	for _, opt := range opts {
		opt(e)
	}

	if _, err := e.AdvanceBlock(context.Background()); err != nil {
		return nil, fmt.Errorf("forge genesis: %w", err)
	}
	return e, nil
}

// AdvanceBlock runs one forge step and returns the finalized block.
func (e *Emulator) AdvanceBlock(ctx context.Context) (*model.Block, error) {
	if !e.forging.CompareAndSwap(false, true) {
		return nil, ErrForgeInProgress
	}
	defer e.forging.Store(false)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.usable(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	started := time.Now()
	pending := len(e.chain.Current().Transactions)
	block, err := e.forge(ctx)
	e.metrics.ObserveForge(err, pending, started)
	if err != nil {
		e.fault = err
		e.logger.Error("forge failed, emulator is unusable", zap.Uint64("height", e.chain.Current().Height), zap.Error(err))
		return nil, err
	}

	e.logger.Debug("block forged",
		zap.Uint64("height", block.Height),
		zap.Int("txs", len(block.Transactions)),
		zap.Stringer("hash", block.Hash),
		zap.Duration("took", time.Since(started)),
	)

	if e.sink != nil {
		if err := e.sink.WriteBlock(ctx, block); err != nil {
			e.logger.Warn("block export failed", zap.Uint64("height", block.Height), zap.Error(err))
		}
	}
	return block, nil
}

// SubmitTransfer queues a payment for the next block. A method call payload
// makes it a method call transaction.
func (e *Emulator) SubmitTransfer(from, to string, amount int64, payload *model.Register) (*model.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.usable(); err != nil {
		return nil, err
	}
	return e.submit(e.registry.Resolve(from).Ref, e.registry.Resolve(to).Ref, amount, payload, "")
}

// SubmitMessage queues a payment carrying a text message.
func (e *Emulator) SubmitMessage(from, to string, amount int64, message string) (*model.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.usable(); err != nil {
		return nil, err
	}
	return e.submit(e.registry.Resolve(from).Ref, e.registry.Resolve(to).Ref, amount, nil, message)
}

// SubmitContractCreation queues the creation of a contract of typeTag at to.
// The activation fee is also the amount moved to the new contract.
func (e *Emulator) SubmitContractCreation(from, to, typeTag string, activationFee int64) (*model.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.usable(); err != nil {
		return nil, err
	}
	tx := &model.Transaction{
		Sender:        e.registry.Resolve(from).Ref,
		Receiver:      e.registry.Resolve(to).Ref,
		Amount:        activationFee,
		Kind:          model.TxContractCreate,
		ContractType:  typeTag,
		ActivationFee: activationFee,
	}
	if err := e.chain.Submit(tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Credit changes a balance outside of the transaction log.
func (e *Emulator) Credit(address string, amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.Credit(e.registry.Resolve(address).Ref, amount)
}

// FindNextMessageTo returns the first finalized message to address with a
// timestamp strictly after the given one, or nil.
func (e *Emulator) FindNextMessageTo(address string, after model.Timestamp) *model.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.FindNextMessageTo(e.registry.Resolve(address).Ref, after)
}

// Account resolves address text, creating the account on first use.
func (e *Emulator) Account(address string) model.AccountRef {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.Resolve(address).Ref
}

// Accounts returns a snapshot of every account in creation order.
func (e *Emulator) Accounts() []ledger.Account {
	e.mu.Lock()
	defer e.mu.Unlock()

	accounts := e.registry.Accounts()
	out := make([]ledger.Account, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, *acc)
	}
	return out
}

// Balance returns the balance of address.
func (e *Emulator) Balance(address string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.Resolve(address).Balance
}

// TotalBalance sums the balances of every account.
func (e *Emulator) TotalBalance() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.TotalBalance()
}

// Contract returns the contract bound to address, or nil.
func (e *Emulator) Contract(address string) *contract.Runtime {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.registry.Resolve(address).Contract
}

// Blocks returns the finalized blocks in chain order.
func (e *Emulator) Blocks() []*model.Block {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.Blocks()
}

// CurrentBlock returns the mutable block collecting pending transactions.
func (e *Emulator) CurrentBlock() *model.Block {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.Current()
}

// PreviousBlock returns the last finalized block.
func (e *Emulator) PreviousBlock() *model.Block {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.chain.Previous()
}

// Close unwinds every suspended contract and logs the ones still running
// after a failed handshake. The emulator cannot be used afterwards.
func (e *Emulator) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	var result *multierror.Error
	for _, acc := range e.registry.Accounts() {
		rt := acc.Contract
		if rt == nil {
			continue
		}
		if rt.State() == contract.StateInvoked {
			e.logger.Warn("contract still running, goroutine abandoned", zap.Stringer("contract", acc.Ref))
			continue
		}
		if !rt.Sleeping() {
			continue
		}
		if err := rt.Terminate(ctx, e.handshakeTimeout); err != nil {
			result = multierror.Append(result, fmt.Errorf("terminate %s: %w", acc.Ref, err))
		}
	}
	e.metrics.SetSleeping(0)
	return result.ErrorOrNil()
}

func (e *Emulator) usable() error {
	if e.closed {
		return ErrEmulatorClosed
	}
	if e.fault != nil {
		return fmt.Errorf("%w: %w", ErrUnusable, e.fault)
	}
	return nil
}

func (e *Emulator) submit(from, to model.AccountRef, amount int64, payload *model.Register, message string) (*model.Transaction, error) {
	tx := &model.Transaction{
		Sender:   from,
		Receiver: to,
		Amount:   amount,
		Kind:     model.TxPayment,
		Message:  message,
	}
	if payload != nil {
		tx.Payload = *payload
		if payload.IsMethodCall() {
			tx.Kind = model.TxMethodCall
		}
	}
	if err := e.chain.Submit(tx); err != nil {
		return nil, err
	}
	return tx, nil
}
