package export

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
	"github.com/goodnatureofminers/contract-emulator/pkg/safe"
)

// Convert flattens a finalized block into export rows.
func Convert(network model.Network, block *model.Block, forgedAt time.Time) (model.ExportBlock, error) {
	txCount, err := safe.Uint32(len(block.Transactions))
	if err != nil {
		return model.ExportBlock{}, fmt.Errorf("block %d tx count: %w", block.Height, err)
	}

	out := model.ExportBlock{
		Block: model.BlockRecord{
			Network:  network,
			Height:   block.Height,
			Hash:     block.Hash.String(),
			PrevHash: block.PrevHash.String(),
			TxCount:  txCount,
			ForgedAt: forgedAt.UTC(),
		},
		Txs: make([]model.TransactionRecord, 0, len(block.Transactions)),
	}

	for i, tx := range block.Transactions {
		index, err := safe.Uint32(i)
		if err != nil {
			return model.ExportBlock{}, fmt.Errorf("block %d tx index: %w", block.Height, err)
		}

		rec := model.TransactionRecord{
			Network:         network,
			BlockHeight:     block.Height,
			TxIndex:         index,
			SubmittedHeight: tx.Timestamp.Height,
			SubmittedIndex:  tx.Timestamp.Index,
			Sender:          tx.Sender.Address,
			SenderID:        uint64(tx.Sender.ID),
			Receiver:        tx.Receiver.Address,
			ReceiverID:      uint64(tx.Receiver.ID),
			Amount:          tx.Amount,
			Kind:            tx.Kind.String(),
			Message:         tx.Message,
			ContractType:    tx.ContractType,
			ActivationFee:   tx.ActivationFee,
		}
		if !tx.Payload.IsZero() {
			rec.Payload = tx.Payload.String()
		}
		out.Txs = append(out.Txs, rec)
	}
	return out, nil
}
