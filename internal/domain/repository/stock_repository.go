package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// StockRepository puerto de persistencia para registros de stock, clave única
// (location_id, item_id, lot_key). Get y GetForUpdate devuelven (nil, nil)
// cuando no existe registro para la clave.
type StockRepository interface {
	Get(locationID, itemID string, lotKey *string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar el
	// read-modify-write de cantidades.
	GetForUpdate(locationID, itemID string, lotKey *string) (*entity.StockRecord, error)
	// Upsert inserta o reemplaza el registro por su clave compuesta.
	Upsert(rec *entity.StockRecord) error
	// ListByLocation registros de una ubicación, incluidos los de cantidad cero.
	ListByLocation(locationID string) ([]*entity.StockRecord, error)
	// List registros de todas las ubicaciones. includeVirtual incluye
	// ubicaciones virtuales (TRANSIT); includeDisposed incluye registros dados
	// de baja (solo para auditoría).
	List(includeVirtual, includeDisposed bool) ([]*entity.StockRecord, error)
	// CountByItem referencias de stock a un artículo (bloqueo de borrado).
	CountByItem(itemID string) (int, error)
}
