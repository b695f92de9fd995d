package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"go.uber.org/zap"
)

// executedSet remembers the contracts run during one forge step in the order
// they first ran.
type executedSet struct {
	seen  map[*contract.Runtime]struct{}
	order []*contract.Runtime
}

func newExecutedSet() *executedSet {
	return &executedSet{seen: make(map[*contract.Runtime]struct{})}
}

func (s *executedSet) add(rt *contract.Runtime) {
	if _, ok := s.seen[rt]; ok {
		return
	}
	s.seen[rt] = struct{}{}
	s.order = append(s.order, rt)
}

// forge advances the chain by one block:
//  1. resume sleeping contracts whose deadline is at or before the block start
//  2. defer pending transactions addressed to contracts still asleep
//  3. apply transfers and contract creations in block order
//  4. dispatch messages to contracts one at a time in block order
//  5. notify every contract that ran and is awake that the block finished
func (e *Emulator) forge(ctx context.Context) (*model.Block, error) {
	pending := e.chain.Current()
	e.blockStart = pending.Start()
	executed := newExecutedSet()

	if err := e.wakeSweep(ctx, executed); err != nil {
		return nil, fmt.Errorf("wake sweep at %s: %w", e.blockStart, err)
	}

	kept, deferred := e.partition(pending.Transactions)
	if len(deferred) > 0 {
		e.metrics.ObserveDeferred(len(deferred))
		e.logger.Debug("transactions deferred to next block",
			zap.Uint64("height", pending.Height),
			zap.Int("deferred", len(deferred)),
		)
	}

	block, err := e.chain.Finalize(kept, deferred, e.apply)
	if err != nil {
		return nil, err
	}

	for _, tx := range block.Transactions {
		if err := e.dispatch(ctx, tx, executed); err != nil {
			return nil, fmt.Errorf("dispatch %s: %w", tx, err)
		}
	}

	for _, rt := range executed.order {
		if rt.Sleeping() {
			continue
		}
		if err := rt.NotifyBlockFinished(); err != nil {
			e.logger.Warn("block finished hook failed", zap.Stringer("contract", rt.Ref()), zap.Error(err))
		}
	}

	e.metrics.SetSleeping(e.sleeping())
	return block, nil
}

// wakeSweep walks the finalized chain in order and resumes every receiver
// contract that is due at the start of the block being forged.
func (e *Emulator) wakeSweep(ctx context.Context, executed *executedSet) error {
	if e.sleeping() == 0 {
		return nil
	}

	visited := make(map[*contract.Runtime]struct{})
	for height := 0; height < e.chain.Len(); height++ {
		block, _ := e.chain.Block(uint64(height))
		for _, tx := range block.Transactions {
			rt := e.contractOf(tx.Receiver)
			if rt == nil {
				continue
			}
			if _, ok := visited[rt]; ok {
				continue
			}
			visited[rt] = struct{}{}

			if !rt.DueBy(e.blockStart) {
				continue
			}
			if err := e.wake(ctx, rt, executed); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Emulator) wake(ctx context.Context, rt *contract.Runtime, executed *executedSet) error {
	until, _ := rt.SleepUntil()
	log := e.logger.With(zap.Stringer("contract", rt.Ref()), zap.Stringer("until", until))

	res, err := rt.Resume(ctx, e.handshakeTimeout)
	e.metrics.ObserveWakeup(err)
	if err != nil {
		return fmt.Errorf("resume %s: %w", rt.Ref(), err)
	}
	executed.add(rt)

	if res.Suspended {
		log.Debug("contract suspended again")
		return nil
	}
	e.metrics.ObserveDispatch(string(res.Path))
	log.Debug("contract woke up", zap.String("path", string(res.Path)))
	return nil
}

// partition splits pending transactions into those forged now and those
// addressed to sleeping contracts. Both keep their relative order.
func (e *Emulator) partition(txs []*model.Transaction) (kept, deferred []*model.Transaction) {
	kept = make([]*model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if rt := e.contractOf(tx.Receiver); rt != nil && rt.Sleeping() {
			deferred = append(deferred, tx)
			continue
		}
		kept = append(kept, tx)
	}
	return kept, deferred
}

// apply moves funds for tx and binds new contracts. The recorded amount is
// overwritten with the amount actually moved.
func (e *Emulator) apply(tx *model.Transaction) {
	sender := e.registry.Resolve(tx.Sender.Address)
	receiver := e.registry.Resolve(tx.Receiver.Address)

	if !tx.IsCreation() {
		tx.Amount = e.registry.Transfer(sender, receiver, tx.Amount)
		return
	}

	log := e.logger.With(
		zap.Stringer("contract", receiver.Ref),
		zap.String("type", tx.ContractType),
		zap.Stringer("tx", tx.Timestamp),
	)
	if receiver.IsContract() {
		log.Warn("contract creation rejected, account already bound", zap.String("bound", receiver.Contract.Type()))
		tx.Amount = 0
		return
	}

	inst, err := e.catalog.Instantiate(tx.ContractType)
	if err != nil {
		log.Warn("contract creation failed", zap.Error(err))
		tx.Amount = 0
		return
	}

	tx.Amount = e.registry.Transfer(sender, receiver, tx.Amount)
	rt, err := contract.Bind(inst, tx, e.env, e.logger)
	if err != nil {
		log.Warn("contract init failed", zap.Error(err))
		e.registry.Transfer(receiver, sender, tx.Amount)
		tx.Amount = 0
		return
	}
	receiver.Contract = rt
	log.Info("contract created", zap.Int64("activation_fee", rt.ActivationFee()))
}

// dispatch runs the receiver contract for tx when the amount covers its
// activation fee.
func (e *Emulator) dispatch(ctx context.Context, tx *model.Transaction, executed *executedSet) error {
	if tx.IsCreation() {
		return nil
	}
	rt := e.contractOf(tx.Receiver)
	if rt == nil || tx.Amount < rt.ActivationFee() {
		return nil
	}
	if rt.Sleeping() {
		// The contract fell asleep earlier in this block. The message stays
		// readable through its inbox.
		e.metrics.ObserveDispatch(outcomeSkippedAsleep)
		e.logger.Info("contract asleep, dispatch skipped",
			zap.Stringer("contract", rt.Ref()),
			zap.Stringer("tx", tx.Timestamp),
		)
		return nil
	}

	res, err := rt.Invoke(ctx, tx, e.handshakeTimeout)
	if err != nil {
		if errors.Is(err, contract.ErrBusy) {
			return fmt.Errorf("%s is locked but not asleep: %w", rt.Ref(), err)
		}
		return err
	}
	executed.add(rt)

	if res.Suspended {
		until, _ := rt.SleepUntil()
		e.logger.Debug("contract suspended",
			zap.Stringer("contract", rt.Ref()),
			zap.Stringer("tx", tx.Timestamp),
			zap.Stringer("until", until),
		)
		return nil
	}
	e.metrics.ObserveDispatch(string(res.Path))
	return nil
}

func (e *Emulator) contractOf(ref model.AccountRef) *contract.Runtime {
	acc, ok := e.registry.Lookup(ref)
	if !ok {
		return nil
	}
	return acc.Contract
}

func (e *Emulator) sleeping() int {
	count := 0
	for _, acc := range e.registry.Accounts() {
		if acc.IsContract() && acc.Contract.Sleeping() {
			count++
		}
	}
	return count
}
