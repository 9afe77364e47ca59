package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// StockStore libro de cantidades por (ubicación, artículo, lote) sobre un
// StockRepository atado a la transacción en curso. Todas las operaciones hacen
// read-modify-write bajo el bloqueo de fila del repositorio.
type StockStore struct {
	repo repository.StockRepository
}

// NewStockStore construye el libro sobre el repositorio de la tx.
func NewStockStore(repo repository.StockRepository) *StockStore {
	return &StockStore{repo: repo}
}

// UpsertReceive suma qty al registro de la clave, creándolo si no existe
// (fusión: nunca una segunda fila para la misma clave). supplier se conserva
// tal cual; si el registro existente no tenía proveedor y la recepción trae
// uno, se adopta. Una recepción sobre un registro dado de baja se rechaza:
// la baja nunca se revierte implícitamente.
func (s *StockStore) UpsertReceive(locationID, itemID string, lotKey *string, qty int64, supplier *string) error {
	if qty <= 0 {
		return domain.ErrInvalidQuantity
	}
	rec, err := s.repo.GetForUpdate(locationID, itemID, lotKey)
	if err != nil {
		return err
	}
	now := time.Now()
	if rec == nil {
		return s.repo.Upsert(&entity.StockRecord{
			ID:         uuid.New().String(),
			LocationID: locationID,
			ItemID:     itemID,
			LotKey:     lotKey,
			SupplierID: supplier,
			Quantity:   qty,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if rec.IsDisposed {
		return domain.ErrInvalidOperation
	}
	rec.Quantity += qty
	if rec.SupplierID == nil && supplier != nil {
		rec.SupplierID = supplier
	}
	rec.UpdatedAt = now
	return s.repo.Upsert(rec)
}

// Deduct resta qty del registro de la clave. Falla con ErrInsufficientStock si
// el registro no existe, está dado de baja o su cantidad es menor a qty.
// Un registro puede llegar a cero y se conserva (rastro de auditoría).
// Devuelve el registro ya actualizado para que el caller propague el proveedor.
func (s *StockStore) Deduct(locationID, itemID string, lotKey *string, qty int64) (*entity.StockRecord, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	rec, err := s.repo.GetForUpdate(locationID, itemID, lotKey)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.IsDisposed || rec.Quantity < qty {
		return nil, domain.ErrInsufficientStock
	}
	rec.Quantity -= qty
	rec.UpdatedAt = time.Now()
	if err := s.repo.Upsert(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// MarkDisposed da de baja el registro de la clave. Falla con ErrNotFound si no
// existe. El registro se conserva, excluido de disponibilidad y reportes.
func (s *StockStore) MarkDisposed(locationID, itemID string, lotKey *string) error {
	rec, err := s.repo.GetForUpdate(locationID, itemID, lotKey)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	rec.IsDisposed = true
	rec.UpdatedAt = time.Now()
	return s.repo.Upsert(rec)
}

// Available cantidad disponible en la clave: 0 si el registro no existe o está
// dado de baja.
func (s *StockStore) Available(locationID, itemID string, lotKey *string) (int64, error) {
	rec, err := s.repo.Get(locationID, itemID, lotKey)
	if err != nil {
		return 0, err
	}
	if rec == nil || rec.IsDisposed {
		return 0, nil
	}
	return rec.Quantity, nil
}
