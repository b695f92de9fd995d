// Package export streams finalized blocks into an analytics store.
package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"github.com/goodnatureofminers/contract-emulator/pkg/batcher"
	"github.com/goodnatureofminers/contract-emulator/pkg/workerpool"
	"go.uber.org/zap"
)

// Writer buffers finalized blocks and writes them in batches. Blocks and
// their transactions are inserted concurrently within one flush.
type Writer struct {
	network model.Network
	repo    Repository
	metrics Metrics
	logger  *zap.Logger
	batcher *batcher.Batcher[model.ExportBlock]
	now     func() time.Time
}

func NewWriter(
	network model.Network,
	repo Repository,
	metrics Metrics,
	logger *zap.Logger,
	cfg batcher.Config,
) (*Writer, error) {
	if network == "" {
		return nil, errors.New("export network is required")
	}
	if repo == nil {
		return nil, errors.New("export repository is required")
	}
	if metrics == nil {
		return nil, errors.New("export metrics is required")
	}
	if logger == nil {
		return nil, errors.New("export logger is required")
	}

	w := &Writer{
		network: network,
		repo:    repo,
		metrics: metrics,
		logger:  logger.Named("export").With(zap.String("network", string(network))),
		now:     time.Now,
	}

	b, err := batcher.New(w.logger, w.flush, cfg)
	if err != nil {
		return nil, fmt.Errorf("export batcher: %w", err)
	}
	w.batcher = b
	return w, nil
}

// Start runs the background flush loop until ctx is done or Stop is called.
func (w *Writer) Start(ctx context.Context) {
	w.batcher.Start(ctx)
}

// Stop flushes buffered blocks and waits for the loop to exit.
func (w *Writer) Stop() {
	w.batcher.Stop()
}

// WriteBlock converts block and queues it for the next flush.
func (w *Writer) WriteBlock(ctx context.Context, block *model.Block) error {
	rec, err := Convert(w.network, block, w.now())
	if err != nil {
		return err
	}
	if err := w.batcher.Add(ctx, rec); err != nil {
		return fmt.Errorf("queue block %d: %w", block.Height, err)
	}
	return nil
}

func (w *Writer) flush(ctx context.Context, blocks []model.ExportBlock) error {
	start := time.Now()
	var err error
	defer func() {
		w.metrics.ObserveFlush(err, len(blocks), start)
	}()

	blockRows := make([]model.BlockRecord, 0, len(blocks))
	var txRows []model.TransactionRecord
	for _, b := range blocks {
		blockRows = append(blockRows, b.Block)
		txRows = append(txRows, b.Txs...)
	}

	inserts := []func(context.Context) error{
		func(ctx context.Context) error {
			return w.repo.InsertBlocks(ctx, blockRows)
		},
		func(ctx context.Context) error {
			return w.repo.InsertTransactions(ctx, txRows)
		},
	}
	err = workerpool.Process(ctx, len(inserts), inserts, func(ctx context.Context, insert func(context.Context) error) error {
		return insert(ctx)
	}, nil)
	if err != nil {
		return fmt.Errorf("flush %d blocks from height %d: %w", len(blocks), blockRows[0].Height, err)
	}
	return nil
}
