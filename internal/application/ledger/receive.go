package ledger

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

// ReceiveUseCase recepción directa de stock en una ubicación (entrada de
// mercancía desde proveedor). Usa la misma fusión por clave compuesta que el
// resto del ledger: nunca una segunda fila para la misma (ubicación, artículo, lote).
type ReceiveUseCase struct {
	txRunner     TxRunner
	locationRepo repository.LocationRepository
	itemRepo     repository.ItemRepository
	log          *logger.Logger
}

// NewReceiveUseCase construye el caso de uso.
func NewReceiveUseCase(
	txRunner TxRunner,
	locationRepo repository.LocationRepository,
	itemRepo repository.ItemRepository,
	log *logger.Logger,
) *ReceiveUseCase {
	return &ReceiveUseCase{txRunner: txRunner, locationRepo: locationRepo, itemRepo: itemRepo, log: log}
}

// ReceiveInput entrada para una recepción directa.
type ReceiveInput struct {
	LocationID string
	ItemID     string
	LotKey     *string
	SupplierID *string
	Quantity   int64
	EntryDate  string
	Actor      string
}

// Receive registra la entrada: valida artículo y lote, fusiona la cantidad en
// el registro de la clave y deja la fila de auditoría, todo en una transacción.
func (uc *ReceiveUseCase) Receive(ctx context.Context, in ReceiveInput) (err error) {
	defer func() { observeOperation("receive", err) }()
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if err := validateLot(item, in.LotKey); err != nil {
		return err
	}
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	if location.IsVirtual {
		// TRANSIT solo recibe stock a través de órdenes de traslado.
		return domain.ErrInvalidOperation
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		logRepo repository.OperationLogRepository,
	) error {
		stock := NewStockStore(stockRepo)
		if err := stock.UpsertReceive(in.LocationID, in.ItemID, in.LotKey, in.Quantity, in.SupplierID); err != nil {
			return err
		}
		if in.EntryDate != "" {
			rec, err := stockRepo.GetForUpdate(in.LocationID, in.ItemID, in.LotKey)
			if err != nil {
				return err
			}
			rec.EntryDate = in.EntryDate
			if err := stockRepo.Upsert(rec); err != nil {
				return err
			}
		}
		return writeLog(logRepo, in.Actor, "receive_stock",
			fmt.Sprintf("recepción de %d unidades del artículo %s en %s", in.Quantity, in.ItemID, in.LocationID))
	})
	if err != nil {
		return err
	}
	if uc.log != nil {
		ev := uc.log.Info().
			Str("operation", "receive").
			Str("item", in.ItemID).
			Str("location", in.LocationID).
			Int64("quantity", in.Quantity).
			Str("actor", in.Actor)
		if in.LotKey != nil {
			ev = ev.Str("lot", *in.LotKey)
		}
		ev.Msg("movimiento de ledger aplicado")
	}
	return nil
}
