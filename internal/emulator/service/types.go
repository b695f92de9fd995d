package service

import (
	"context"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/contract"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	AddressDecoder interface {
		Decode(text string) (model.AccountID, error)
	}
	ContractCatalog interface {
		Instantiate(typeTag string) (contract.Instance, error)
	}
	EmulatorMetrics interface {
		ObserveForge(err error, txs int, started time.Time)
		ObserveDispatch(outcome string)
		ObserveDeferred(count int)
		ObserveWakeup(err error)
		SetSleeping(count int)
	}
	BlockSink interface {
		WriteBlock(ctx context.Context, block *model.Block) error
	}
)
