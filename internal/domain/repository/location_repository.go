package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// LocationRepository puerto de persistencia para ubicaciones (DIP).
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	Update(location *entity.Location) error
	// List lista ubicaciones; por defecto las virtuales (TRANSIT) quedan fuera.
	List(includeVirtual bool) ([]*entity.Location, error)
	Delete(id string) error
}
