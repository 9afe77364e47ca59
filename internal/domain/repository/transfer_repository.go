package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// TransferRepository puerto de persistencia para órdenes de traslado.
// GetByID y GetForUpdate devuelven (nil, nil) cuando la orden no existe.
type TransferRepository interface {
	Create(t *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	// GetForUpdate bloquea la orden para que mutaciones concurrentes sobre la
	// misma orden se excluyan mutuamente (la primera gana; el resto ve un
	// estado distinto de pending).
	GetForUpdate(id string) (*entity.Transfer, error)
	Update(t *entity.Transfer) error
	// Delete elimina la orden por completo (solo órdenes pending).
	Delete(id string) error
	ListByStatus(status string) ([]*entity.Transfer, error)
	List() ([]*entity.Transfer, error)
	// CountByItem referencias de órdenes a un artículo (bloqueo de borrado).
	CountByItem(itemID string) (int, error)
}
