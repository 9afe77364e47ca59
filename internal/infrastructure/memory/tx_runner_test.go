package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
)

func TestTxRunner_ErrorRestauraLaInstantanea(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)
	stocks := memory.NewStockRepository(store)

	require.NoError(t, stocks.Upsert(&entity.StockRecord{
		ID:         "r1",
		LocationID: "loc",
		ItemID:     "item",
		Quantity:   100,
	}))

	boom := errors.New("fallo a mitad de camino")
	err := runner.Run(context.Background(), func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		logRepo repository.OperationLogRepository,
	) error {
		rec, err := stockRepo.GetForUpdate("loc", "item", nil)
		require.NoError(t, err)
		rec.Quantity = 1
		require.NoError(t, stockRepo.Upsert(rec))
		require.NoError(t, transferRepo.Create(&entity.Transfer{ID: "t1", Status: entity.TransferStatusPending, CreatedAt: time.Now()}))
		require.NoError(t, logRepo.Create(&entity.OperationLog{ID: "l1", Action: "x"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Todo lo escrito dentro de la transacción fallida desapareció.
	rec, err := stocks.Get("loc", "item", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), rec.Quantity)
	tr, err := memory.NewTransferRepository(store).GetByID("t1")
	require.NoError(t, err)
	assert.Nil(t, tr)
	logs, err := memory.NewOperationLogRepository(store).List(10, 0)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestTxRunner_ExitoConservaLosCambios(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	err := runner.Run(context.Background(), func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		logRepo repository.OperationLogRepository,
	) error {
		return stockRepo.Upsert(&entity.StockRecord{ID: "r1", LocationID: "loc", ItemID: "item", Quantity: 7})
	})
	require.NoError(t, err)

	rec, err := memory.NewStockRepository(store).Get("loc", "item", nil)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, int64(7), rec.Quantity)
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	runner := memory.NewTxRunner(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := runner.Run(ctx, func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		logRepo repository.OperationLogRepository,
	) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStockRepository_ClavesDeLoteNilYVaciaSonDistintas(t *testing.T) {
	store := memory.NewStore()
	stocks := memory.NewStockRepository(store)
	empty := ""
	lot := "L-1"

	require.NoError(t, stocks.Upsert(&entity.StockRecord{ID: "a", LocationID: "loc", ItemID: "item", Quantity: 1}))
	require.NoError(t, stocks.Upsert(&entity.StockRecord{ID: "b", LocationID: "loc", ItemID: "item", LotKey: &empty, Quantity: 2}))
	require.NoError(t, stocks.Upsert(&entity.StockRecord{ID: "c", LocationID: "loc", ItemID: "item", LotKey: &lot, Quantity: 3}))

	recNil, err := stocks.Get("loc", "item", nil)
	require.NoError(t, err)
	recEmpty, err := stocks.Get("loc", "item", &empty)
	require.NoError(t, err)
	recLot, err := stocks.Get("loc", "item", &lot)
	require.NoError(t, err)

	assert.Equal(t, int64(1), recNil.Quantity)
	assert.Equal(t, int64(2), recEmpty.Quantity)
	assert.Equal(t, int64(3), recLot.Quantity)
}
