package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// ItemUseCase casos de uso CRUD para artículos. El borrado se bloquea mientras
// existan registros de stock u órdenes que referencien el artículo.
type ItemUseCase struct {
	repo         repository.ItemRepository
	stockRepo    repository.StockRepository
	transferRepo repository.TransferRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	repo repository.ItemRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
) *ItemUseCase {
	return &ItemUseCase{repo: repo, stockRepo: stockRepo, transferRepo: transferRepo}
}

// Create crea un artículo.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	now := time.Now()
	item := &entity.Item{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Dose:        in.Dose,
		PackageType: in.PackageType,
		Description: in.Description,
		RequiresLot: in.RequiresLot,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// Update actualiza los campos descriptivos. RequiresLot no se toca: cambiarlo
// dejaría claves de stock existentes inconsistentes con el artículo.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Dose != nil {
		item.Dose = *in.Dose
	}
	if in.PackageType != nil {
		item.PackageType = *in.PackageType
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista todos los artículos.
func (uc *ItemUseCase) List() ([]dto.ItemResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return items, nil
}

// Delete elimina un artículo sin referencias. Con stock u órdenes que lo
// referencien devuelve ErrConflict.
func (uc *ItemUseCase) Delete(id string) error {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	stockRefs, err := uc.stockRepo.CountByItem(id)
	if err != nil {
		return err
	}
	transferRefs, err := uc.transferRepo.CountByItem(id)
	if err != nil {
		return err
	}
	if stockRefs > 0 || transferRefs > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	if i == nil {
		return nil
	}
	return &dto.ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Dose:        i.Dose,
		PackageType: i.PackageType,
		Description: i.Description,
		RequiresLot: i.RequiresLot,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
