package clickhouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/goodnatureofminers/contract-emulator/internal/emulator/model"
)

func TestRepository_InsertBlocks(t *testing.T) {
	ctx := context.Background()
	block := model.BlockRecord{
		Network:  model.DefaultNetwork,
		Height:   42,
		Hash:     "hash",
		PrevHash: "prev",
		TxCount:  3,
		ForgedAt: time.Unix(1700000000, 0),
	}
	appendBlock := func(b *MockBatch) *gomock.Call {
		return b.EXPECT().Append(
			string(block.Network),
			block.Height,
			block.Hash,
			block.PrevHash,
			block.TxCount,
			block.ForgedAt,
		)
	}

	tests := []struct {
		name    string
		blocks  []model.BlockRecord
		setup   func(t *testing.T) *Repository
		wantErr bool
	}{
		{
			name:   "empty input",
			blocks: nil,
			setup: func(t *testing.T) *Repository {
				ctrl := gomock.NewController(t)
				mockMetrics := NewMockMetrics(ctrl)
				mockMetrics.EXPECT().
					Observe("insert_blocks", model.Network(""), nil, gomock.AssignableToTypeOf(time.Time{}))
				return &Repository{conn: NewMockConn(ctrl), metrics: mockMetrics}
			},
		},
		{
			name:   "prepare batch error",
			blocks: []model.BlockRecord{block},
			setup: func(t *testing.T) *Repository {
				ctrl := gomock.NewController(t)
				mockConn := NewMockConn(ctrl)
				mockMetrics := NewMockMetrics(ctrl)

				prepareErr := errors.New("prepare failed")
				gomock.InOrder(
					mockConn.EXPECT().
						PrepareBatch(ctx, insertBlocksQuery).
						Return(nil, prepareErr),
					mockMetrics.EXPECT().
						Observe("insert_blocks", block.Network, gomock.Any(), gomock.AssignableToTypeOf(time.Time{})).
						Do(func(_ string, _ model.Network, err error, _ time.Time) {
							if !errors.Is(err, prepareErr) {
								t.Fatalf("unexpected error in metrics: %v", err)
							}
						}),
				)
				return &Repository{conn: mockConn, metrics: mockMetrics}
			},
			wantErr: true,
		},
		{
			name:   "append error aborts batch",
			blocks: []model.BlockRecord{block},
			setup: func(t *testing.T) *Repository {
				ctrl := gomock.NewController(t)
				mockConn := NewMockConn(ctrl)
				mockBatch := NewMockBatch(ctrl)
				mockMetrics := NewMockMetrics(ctrl)

				appendErr := errors.New("append failed")
				gomock.InOrder(
					mockConn.EXPECT().
						PrepareBatch(ctx, insertBlocksQuery).
						Return(mockBatch, nil),
					appendBlock(mockBatch).Return(appendErr),
					mockBatch.EXPECT().Abort().Return(nil),
					mockMetrics.EXPECT().
						Observe("insert_blocks", block.Network, gomock.Any(), gomock.AssignableToTypeOf(time.Time{})).
						Do(func(_ string, _ model.Network, err error, _ time.Time) {
							if !errors.Is(err, appendErr) {
								t.Fatalf("unexpected error in metrics: %v", err)
							}
						}),
				)
				return &Repository{conn: mockConn, metrics: mockMetrics}
			},
			wantErr: true,
		},
		{
			name:   "send error",
			blocks: []model.BlockRecord{block},
			setup: func(t *testing.T) *Repository {
				ctrl := gomock.NewController(t)
				mockConn := NewMockConn(ctrl)
				mockBatch := NewMockBatch(ctrl)
				mockMetrics := NewMockMetrics(ctrl)

				sendErr := errors.New("send failed")
				gomock.InOrder(
					mockConn.EXPECT().
						PrepareBatch(ctx, insertBlocksQuery).
						Return(mockBatch, nil),
					appendBlock(mockBatch).Return(nil),
					mockBatch.EXPECT().Send().Return(sendErr),
					mockMetrics.EXPECT().
						Observe("insert_blocks", block.Network, gomock.Any(), gomock.AssignableToTypeOf(time.Time{})).
						Do(func(_ string, _ model.Network, err error, _ time.Time) {
							if !errors.Is(err, sendErr) {
								t.Fatalf("unexpected error in metrics: %v", err)
							}
						}),
				)
				return &Repository{conn: mockConn, metrics: mockMetrics}
			},
			wantErr: true,
		},
		{
			name:   "success",
			blocks: []model.BlockRecord{block},
			setup: func(t *testing.T) *Repository {
				ctrl := gomock.NewController(t)
				mockConn := NewMockConn(ctrl)
				mockBatch := NewMockBatch(ctrl)
				mockMetrics := NewMockMetrics(ctrl)

				gomock.InOrder(
					mockConn.EXPECT().
						PrepareBatch(ctx, insertBlocksQuery).
						Return(mockBatch, nil),
					appendBlock(mockBatch).Return(nil),
					mockBatch.EXPECT().Send().Return(nil),
					mockMetrics.EXPECT().
						Observe("insert_blocks", block.Network, nil, gomock.AssignableToTypeOf(time.Time{})),
				)
				return &Repository{conn: mockConn, metrics: mockMetrics}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := tt.setup(t)
			if err := repo.InsertBlocks(ctx, tt.blocks); (err != nil) != tt.wantErr {
				t.Fatalf("InsertBlocks() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
