package export

import (
	"context"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertBlocks(ctx context.Context, blocks []model.BlockRecord) error
		InsertTransactions(ctx context.Context, txs []model.TransactionRecord) error
	}

	Metrics interface {
		ObserveFlush(err error, blocks int, started time.Time)
	}
)
