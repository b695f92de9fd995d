package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
)

const insertBlocksQuery = `
INSERT INTO emulator_blocks (
	network,
	height,
	hash,
	prev_hash,
	tx_count,
	forged_at
) VALUES`

// InsertBlocks stores block rows in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.BlockRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_blocks", firstNetwork(blocks), err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			string(block.Network),
			block.Height,
			block.Hash,
			block.PrevHash,
			block.TxCount,
			block.ForgedAt,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append block %d: %w", block.Height, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	return nil
}
