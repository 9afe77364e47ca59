package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// ResolveMismatchInput entrada para resolver una orden en mismatch.
// Action decide el destino del remanente retenido en TRANSIT:
// discard lo elimina del sistema, return_source lo devuelve al origen y
// credit_destination lo acredita al destino (solo órdenes almacén a almacén).
type ResolveMismatchInput struct {
	Action string
	Notes  string
	Actor  string
}

// ResolveMismatch conciliación terminal de una orden parcialmente recibida.
// Opera una sola vez: una orden resolved no puede resolverse de nuevo.
func (uc *TransferUseCase) ResolveMismatch(ctx context.Context, id string, in ResolveMismatchInput) (_ *entity.Transfer, err error) {
	defer func() { observeOperation("resolve", err) }()
	switch in.Action {
	case entity.ResolveActionDiscard, entity.ResolveActionReturnToSource, entity.ResolveActionCreditDestination:
	default:
		return nil, domain.ErrInvalidInput
	}
	transit, err := uc.transit()
	if err != nil {
		return nil, err
	}

	var transfer *entity.Transfer
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		logRepo repository.OperationLogRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.Status != entity.TransferStatusMismatch {
			return domain.ErrInvalidOperation
		}
		remainder := t.Remainder()
		if remainder <= 0 {
			// Inalcanzable bajo el invariante de confirmación; comprobado igual.
			return domain.ErrInvalidState
		}

		stock := NewStockStore(stockRepo)
		rec, err := stock.Deduct(transit.ID, t.ItemID, t.LotKey, remainder)
		if err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				return domain.ErrInsufficientTransitStock
			}
			return err
		}

		switch in.Action {
		case entity.ResolveActionDiscard:
			// El remanente sale del sistema; la nota del caller queda en auditoría.
		case entity.ResolveActionReturnToSource:
			if err := stock.UpsertReceive(t.SourceLocationID, t.ItemID, t.LotKey, remainder, rec.SupplierID); err != nil {
				return err
			}
		case entity.ResolveActionCreditDestination:
			if t.Kind != entity.TransferKindLocation {
				return domain.ErrInvalidOperation
			}
			if err := stock.UpsertReceive(*t.DestinationLocationID, t.ItemID, t.LotKey, remainder, rec.SupplierID); err != nil {
				return err
			}
		}

		now := time.Now()
		t.Status = entity.TransferStatusResolved
		t.ResolvedAt = &now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		transfer = t
		details := fmt.Sprintf("orden %s: remanente de %d unidades resuelto con %s", t.ID, remainder, in.Action)
		if in.Notes != "" {
			details += "; notas: " + in.Notes
		}
		return writeLog(logRepo, in.Actor, "resolve_mismatch", details)
	})
	if err != nil {
		return nil, err
	}
	uc.audit("resolve", transfer, transfer.Remainder(), in.Actor)
	return transfer, nil
}
