package builtin

import (
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"
	"go.uber.org/zap"
)

// DefaultTimelockDelay is the number of blocks a Timelock holds funds.
const DefaultTimelockDelay uint64 = 2

// Timelock holds the funds it receives for a number of blocks and then pays
// its whole balance to the sender of the message that locked them.
type Timelock struct {
	contract.Base

	delay    uint64
	released int64
	payouts  int
}

// TimelockMethods is the method table of Timelock.
func TimelockMethods() contract.MethodTable {
	return contract.NewMethodTable().
		Add("set_delay", contract.Func1((*Timelock).SetDelay))
}

func (t *Timelock) Init() {
	t.delay = DefaultTimelockDelay
}

// SetDelay changes the lock period used by later messages. Negative values
// are ignored.
func (t *Timelock) SetDelay(blocks int64) {
	if blocks < 0 {
		return
	}
	t.delay = uint64(blocks)
}

func (t *Timelock) TxReceived() {
	beneficiary := t.CurrentTx().Sender
	log := t.Logger().With(zap.Stringer("beneficiary", beneficiary))

	if err := t.SleepBlocks(t.delay); err != nil {
		log.Warn("timelock could not sleep", zap.Error(err))
	}

	amount := t.Balance()
	if amount <= 0 {
		return
	}
	if err := t.SendMessage(beneficiary, amount, "timelock released"); err != nil {
		log.Warn("timelock payout failed", zap.Error(err))
		return
	}
	t.released += amount
	t.payouts++
	log.Debug("timelock released", zap.Int64("amount", amount), zap.Stringer("at", t.BlockTimestamp()))
}

// Delay returns the configured lock period in blocks.
func (t *Timelock) Delay() uint64 { return t.delay }

// Released is the total amount paid out so far.
func (t *Timelock) Released() int64 { return t.released }

// Payouts is the number of payouts queued so far.
func (t *Timelock) Payouts() int { return t.payouts }
