package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
	"github.com/tu-usuario/stock-ledger/pkg/logger"
)

// TransferUseCase máquina de estados de órdenes de traslado. Cada operación
// corre entera dentro de una transacción (TxRunner.Run) con bloqueo de fila
// sobre la orden y sobre los registros de stock tocados: o todos los pasos se
// aplican, o ninguno.
type TransferUseCase struct {
	txRunner      TxRunner
	locationRepo  repository.LocationRepository
	itemRepo      repository.ItemRepository
	recipientRepo repository.RecipientRepository
	log           *logger.Logger
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	locationRepo repository.LocationRepository,
	itemRepo repository.ItemRepository,
	recipientRepo repository.RecipientRepository,
	log *logger.Logger,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		locationRepo:  locationRepo,
		itemRepo:      itemRepo,
		recipientRepo: recipientRepo,
		log:           log,
	}
}

// CreateTransferInput entrada para crear una orden de traslado.
// Para kind=location: DestinationLocationID obligatorio.
// Para kind=recipient: RecipientID obligatorio (excluyente con destino).
// Para kind=disposal: ni destino ni recipient.
type CreateTransferInput struct {
	Kind                  string
	SourceLocationID      string
	DestinationLocationID *string
	RecipientID           *string
	ItemID                string
	LotKey                *string
	Quantity              int64
	TransferDate          string
	Actor                 string
}

// EditTransferInput nuevos parámetros para editar una orden pending.
// El tipo y el destino de la orden no cambian; origen, artículo, lote y
// cantidad sí.
type EditTransferInput struct {
	SourceLocationID string
	ItemID           string
	LotKey           *string
	Quantity         int64
	Actor            string
}

// Create valida la solicitud, descuenta del origen, acredita en TRANSIT y crea
// la orden en estado pending. Los tres pasos son una unidad atómica.
func (uc *TransferUseCase) Create(ctx context.Context, in CreateTransferInput) (_ *entity.Transfer, err error) {
	defer func() { observeOperation("create", err) }()
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateLot(item, in.LotKey); err != nil {
		return nil, err
	}
	source, err := uc.locationRepo.GetByID(in.SourceLocationID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}
	if source.IsVirtual {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateTarget(in); err != nil {
		return nil, err
	}
	transit, err := uc.transit()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:                    uuid.New().String(),
		Kind:                  in.Kind,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		RecipientID:           in.RecipientID,
		ItemID:                in.ItemID,
		LotKey:                in.LotKey,
		QuantityRequested:     in.Quantity,
		QuantityReceived:      0,
		Status:                entity.TransferStatusPending,
		TransferDate:          in.TransferDate,
		CreatedBy:             in.Actor,
		CreatedAt:             now,
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		logRepo repository.OperationLogRepository,
	) error {
		stock := NewStockStore(stockRepo)
		rec, err := stock.Deduct(in.SourceLocationID, in.ItemID, in.LotKey, in.Quantity)
		if err != nil {
			return err
		}
		if err := stock.UpsertReceive(transit.ID, in.ItemID, in.LotKey, in.Quantity, rec.SupplierID); err != nil {
			return err
		}
		if err := transferRepo.Create(transfer); err != nil {
			return err
		}
		return writeLog(logRepo, in.Actor, "create_transfer",
			fmt.Sprintf("orden %s: %d unidades del artículo %s de %s a tránsito", transfer.ID, in.Quantity, in.ItemID, in.SourceLocationID))
	})
	if err != nil {
		return nil, err
	}
	uc.audit("create", transfer, in.Quantity, in.Actor)
	return transfer, nil
}

// Confirm confirma una orden pending con la cantidad realmente recibida.
// Si quantityReceived < solicitada la orden queda en mismatch y el resto
// permanece en TRANSIT a cuenta de la orden.
func (uc *TransferUseCase) Confirm(ctx context.Context, id string, quantityReceived int64, actor string) (*entity.Transfer, error) {
	return uc.confirm(ctx, id, &quantityReceived, actor)
}

// ConfirmFull confirma la orden por la cantidad solicitada completa, sin paso
// de conciliación aparte.
func (uc *TransferUseCase) ConfirmFull(ctx context.Context, id, actor string) (*entity.Transfer, error) {
	return uc.confirm(ctx, id, nil, actor)
}

func (uc *TransferUseCase) confirm(ctx context.Context, id string, quantityReceived *int64, actor string) (_ *entity.Transfer, err error) {
	defer func() { observeOperation("confirm", err) }()
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
		if t.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}
		qty := t.QuantityRequested
		if quantityReceived != nil {
			qty = *quantityReceived
		}
		if qty <= 0 || qty > t.QuantityRequested {
			return domain.ErrInvalidQuantity
		}

		stock := NewStockStore(stockRepo)
		rec, err := stock.Deduct(transit.ID, t.ItemID, t.LotKey, qty)
		if err != nil {
			// Faltante en TRANSIT indica una violación del invariante de
			// conservación; se reporta con su propio error.
			if errors.Is(err, domain.ErrInsufficientStock) {
				return domain.ErrInsufficientTransitStock
			}
			return err
		}
		switch t.Kind {
		case entity.TransferKindLocation:
			if err := stock.UpsertReceive(*t.DestinationLocationID, t.ItemID, t.LotKey, qty, rec.SupplierID); err != nil {
				return err
			}
		case entity.TransferKindDisposal:
			if err := stock.MarkDisposed(t.SourceLocationID, t.ItemID, t.LotKey); err != nil {
				return err
			}
		case entity.TransferKindRecipient:
			// Entregado a consumidor externo: la cantidad sale del sistema.
		}

		now := time.Now()
		t.QuantityReceived = qty
		t.ConfirmedAt = &now
		if qty == t.QuantityRequested {
			t.Status = entity.TransferStatusConfirmed
		} else {
			t.Status = entity.TransferStatusMismatch
		}
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		transfer = t
		return writeLog(logRepo, actor, "confirm_transfer",
			fmt.Sprintf("orden %s: recibidas %d de %d unidades", t.ID, qty, t.QuantityRequested))
	})
	if err != nil {
		return nil, err
	}
	uc.audit("confirm", transfer, transfer.QuantityReceived, actor)
	return transfer, nil
}

// Reject rechaza una orden pending devolviendo la cantidad completa de TRANSIT
// a la ubicación de origen.
func (uc *TransferUseCase) Reject(ctx context.Context, id, actor string) (_ *entity.Transfer, err error) {
	defer func() { observeOperation("reject", err) }()
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
		if t.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}
		if err := reverseToSource(NewStockStore(stockRepo), transit.ID, t); err != nil {
			return err
		}
		now := time.Now()
		t.Status = entity.TransferStatusRejected
		t.ConfirmedAt = &now
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		transfer = t
		return writeLog(logRepo, actor, "reject_transfer",
			fmt.Sprintf("orden %s: %d unidades devueltas a %s", t.ID, t.QuantityRequested, t.SourceLocationID))
	})
	if err != nil {
		return nil, err
	}
	uc.audit("reject", transfer, transfer.QuantityRequested, actor)
	return transfer, nil
}

// Delete elimina una orden pending: misma reversión que Reject y borrado del
// registro de la orden. Las órdenes en cualquier otro estado son historia
// inmutable y no se pueden eliminar.
func (uc *TransferUseCase) Delete(ctx context.Context, id, actor string) (err error) {
	defer func() { observeOperation("delete", err) }()
	transit, err := uc.transit()
	if err != nil {
		return err
	}
	var deleted *entity.Transfer
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
		if t.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}
		if err := reverseToSource(NewStockStore(stockRepo), transit.ID, t); err != nil {
			return err
		}
		if err := transferRepo.Delete(t.ID); err != nil {
			return err
		}
		deleted = t
		return writeLog(logRepo, actor, "delete_transfer",
			fmt.Sprintf("orden %s eliminada, %d unidades devueltas a %s", t.ID, t.QuantityRequested, t.SourceLocationID))
	})
	if err != nil {
		return err
	}
	uc.audit("delete", deleted, deleted.QuantityRequested, actor)
	return nil
}

// Edit modifica una orden pending como "deshacer y rehacer" atómico: revierte
// el movimiento original hacia el origen original y vuelve a ejecutar la
// validación y el movimiento de Create con los nuevos parámetros, conservando
// id y fecha de creación. Si el rehacer falla, la transacción revierte y el
// movimiento original queda intacto.
func (uc *TransferUseCase) Edit(ctx context.Context, id string, in EditTransferInput) (_ *entity.Transfer, err error) {
	defer func() { observeOperation("edit", err) }()
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateLot(item, in.LotKey); err != nil {
		return nil, err
	}
	source, err := uc.locationRepo.GetByID(in.SourceLocationID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}
	if source.IsVirtual {
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
		if t.Status != entity.TransferStatusPending {
			return domain.ErrInvalidState
		}

		stock := NewStockStore(stockRepo)
		if err := reverseToSource(stock, transit.ID, t); err != nil {
			return err
		}
		rec, err := stock.Deduct(in.SourceLocationID, in.ItemID, in.LotKey, in.Quantity)
		if err != nil {
			return err
		}
		if err := stock.UpsertReceive(transit.ID, in.ItemID, in.LotKey, in.Quantity, rec.SupplierID); err != nil {
			return err
		}

		t.SourceLocationID = in.SourceLocationID
		t.ItemID = in.ItemID
		t.LotKey = in.LotKey
		t.QuantityRequested = in.Quantity
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		transfer = t
		return writeLog(logRepo, in.Actor, "edit_transfer",
			fmt.Sprintf("orden %s: ahora %d unidades del artículo %s desde %s", t.ID, in.Quantity, in.ItemID, in.SourceLocationID))
	})
	if err != nil {
		return nil, err
	}
	uc.audit("edit", transfer, transfer.QuantityRequested, in.Actor)
	return transfer, nil
}

// reverseToSource deshace el movimiento pendiente de una orden: descuenta la
// cantidad solicitada de TRANSIT y la devuelve al origen. El faltante en
// TRANSIT se reporta como violación de invariante.
func reverseToSource(stock *StockStore, transitID string, t *entity.Transfer) error {
	rec, err := stock.Deduct(transitID, t.ItemID, t.LotKey, t.QuantityRequested)
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			return domain.ErrInsufficientTransitStock
		}
		return err
	}
	return stock.UpsertReceive(t.SourceLocationID, t.ItemID, t.LotKey, t.QuantityRequested, rec.SupplierID)
}

// validateLot exige clave de lote presente cuando el artículo la requiere y
// ausente cuando no. La cadena vacía no es una clave válida (distinta de nil).
func validateLot(item *entity.Item, lot *string) error {
	if lot != nil && *lot == "" {
		return domain.ErrInvalidInput
	}
	if item.RequiresLot != (lot != nil) {
		return domain.ErrLotKeyMismatch
	}
	return nil
}

// validateTarget comprueba la exclusión mutua destino/recipient según el tipo.
func (uc *TransferUseCase) validateTarget(in CreateTransferInput) error {
	switch in.Kind {
	case entity.TransferKindLocation:
		if in.DestinationLocationID == nil || in.RecipientID != nil {
			return domain.ErrInvalidInput
		}
		if *in.DestinationLocationID == in.SourceLocationID {
			return domain.ErrInvalidInput
		}
		dest, err := uc.locationRepo.GetByID(*in.DestinationLocationID)
		if err != nil {
			return err
		}
		if dest == nil {
			return domain.ErrNotFound
		}
		if dest.IsVirtual {
			return domain.ErrInvalidInput
		}
	case entity.TransferKindRecipient:
		if in.RecipientID == nil || in.DestinationLocationID != nil {
			return domain.ErrInvalidInput
		}
		recipient, err := uc.recipientRepo.GetByID(*in.RecipientID)
		if err != nil {
			return err
		}
		if recipient == nil {
			return domain.ErrNotFound
		}
	case entity.TransferKindDisposal:
		if in.DestinationLocationID != nil || in.RecipientID != nil {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// transit resuelve la ubicación virtual TRANSIT (reservada, creada al inicio).
func (uc *TransferUseCase) transit() (*entity.Location, error) {
	transit, err := uc.locationRepo.GetByCode(entity.TransitCode)
	if err != nil {
		return nil, err
	}
	if transit == nil {
		return nil, fmt.Errorf("ubicación de tránsito: %w", domain.ErrNotFound)
	}
	return transit, nil
}

// writeLog inserta la fila de auditoría en la misma transacción que la mutación.
func writeLog(logRepo repository.OperationLogRepository, actor, action, details string) error {
	return logRepo.Create(&entity.OperationLog{
		ID:        uuid.New().String(),
		Actor:     actor,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	})
}

// audit emite el evento estructurado tras el commit.
func (uc *TransferUseCase) audit(operation string, t *entity.Transfer, qty int64, actor string) {
	if uc.log == nil || t == nil {
		return
	}
	ev := uc.log.Info().
		Str("operation", operation).
		Str("order_id", t.ID).
		Str("item", t.ItemID).
		Str("source", t.SourceLocationID).
		Int64("quantity", qty).
		Str("actor", actor)
	if t.LotKey != nil {
		ev = ev.Str("lot", *t.LotKey)
	}
	if t.DestinationLocationID != nil {
		ev = ev.Str("destination", *t.DestinationLocationID)
	}
	ev.Msg("movimiento de ledger aplicado")
}
