package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
)

const insertTransactionsQuery = `
INSERT INTO emulator_transactions (
	network,
	block_height,
	tx_index,
	submitted_height,
	submitted_index,
	sender,
	sender_id,
	receiver,
	receiver_id,
	amount,
	kind,
	payload,
	message,
	contract_type,
	activation_fee
) VALUES`

// InsertTransactions stores transaction rows in ClickHouse.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.TransactionRecord) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transactions", firstNetwork(txs), err, start)
	}()

	if len(txs) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertTransactionsQuery)
	if err != nil {
		return fmt.Errorf("prepare transactions batch: %w", err)
	}

	for _, tx := range txs {
		if err = batch.Append(
			string(tx.Network),
			tx.BlockHeight,
			tx.TxIndex,
			tx.SubmittedHeight,
			tx.SubmittedIndex,
			tx.Sender,
			tx.SenderID,
			tx.Receiver,
			tx.ReceiverID,
			tx.Amount,
			tx.Kind,
			tx.Payload,
			tx.Message,
			tx.ContractType,
			tx.ActivationFee,
		); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append transaction %d/%d: %w", tx.BlockHeight, tx.TxIndex, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transactions: %w", err)
	}
	return nil
}
