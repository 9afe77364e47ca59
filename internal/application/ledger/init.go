package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// EnsureTransit garantiza que la ubicación virtual TRANSIT exista y esté
// marcada como virtual. Se invoca una vez al arrancar; la ubicación nunca se
// elimina. Devuelve la ubicación de tránsito.
func EnsureTransit(repo repository.LocationRepository) (*entity.Location, error) {
	transit, err := repo.GetByCode(entity.TransitCode)
	if err != nil {
		return nil, err
	}
	if transit == nil {
		now := time.Now()
		transit = &entity.Location{
			ID:        uuid.New().String(),
			Name:      "Mercancía en tránsito",
			Code:      entity.TransitCode,
			IsVirtual: true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Create(transit); err != nil {
			return nil, err
		}
		return transit, nil
	}
	if !transit.IsVirtual {
		transit.IsVirtual = true
		transit.UpdatedAt = time.Now()
		if err := repo.Update(transit); err != nil {
			return nil, err
		}
	}
	return transit, nil
}
