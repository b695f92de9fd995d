package builtin

import (
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"
	"go.uber.org/zap"
)

// Echo returns every amount it receives to the sender.
type Echo struct {
	contract.Base
}

func (e *Echo) TxReceived() {
	tx := e.CurrentTx()
	if tx.Amount <= 0 {
		return
	}
	if err := e.SendAmount(tx.Sender, tx.Amount); err != nil {
		e.Logger().Warn("echo failed", zap.Stringer("to", tx.Sender), zap.Error(err))
	}
}
