package ledger

import (
	"fmt"

	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// QueryUseCase lecturas del ledger para reporting y paneles: solo lectura,
// sobre repositorios atados al pool (fuera de transacción).
type QueryUseCase struct {
	stockRepo    repository.StockRepository
	transferRepo repository.TransferRepository
	locationRepo repository.LocationRepository
	logRepo      repository.OperationLogRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
	locationRepo repository.LocationRepository,
	logRepo repository.OperationLogRepository,
) *QueryUseCase {
	return &QueryUseCase{
		stockRepo:    stockRepo,
		transferRepo: transferRepo,
		locationRepo: locationRepo,
		logRepo:      logRepo,
	}
}

// Stock lista registros de stock. includeVirtual incluye TRANSIT;
// includeDisposed incluye registros dados de baja (vista de auditoría).
func (uc *QueryUseCase) Stock(includeVirtual, includeDisposed bool) ([]*entity.StockRecord, error) {
	return uc.stockRepo.List(includeVirtual, includeDisposed)
}

// TransitStock contenido actual de la ubicación TRANSIT: cantidades en tránsito
// pertenecientes a órdenes pending o mismatch.
func (uc *QueryUseCase) TransitStock() ([]*entity.StockRecord, error) {
	transit, err := uc.locationRepo.GetByCode(entity.TransitCode)
	if err != nil {
		return nil, err
	}
	if transit == nil {
		return nil, fmt.Errorf("ubicación de tránsito: %w", domain.ErrNotFound)
	}
	return uc.stockRepo.ListByLocation(transit.ID)
}

// Available cantidad disponible de un artículo/lote en una ubicación.
func (uc *QueryUseCase) Available(locationID, itemID string, lotKey *string) (int64, error) {
	return NewStockStore(uc.stockRepo).Available(locationID, itemID, lotKey)
}

// Transfers lista órdenes; status vacío devuelve todas.
func (uc *QueryUseCase) Transfers(status string) ([]*entity.Transfer, error) {
	if status == "" {
		return uc.transferRepo.List()
	}
	switch status {
	case entity.TransferStatusPending, entity.TransferStatusConfirmed,
		entity.TransferStatusMismatch, entity.TransferStatusRejected,
		entity.TransferStatusResolved:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.transferRepo.ListByStatus(status)
}

// Transfer obtiene una orden por id.
func (uc *QueryUseCase) Transfer(id string) (*entity.Transfer, error) {
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// Logs rastro de auditoría paginado, más reciente primero.
func (uc *QueryUseCase) Logs(limit, offset int) ([]*entity.OperationLog, error) {
	return uc.logRepo.List(limit, offset)
}
