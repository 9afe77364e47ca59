package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// RecipientUseCase casos de uso CRUD para consumidores externos.
type RecipientUseCase struct {
	repo repository.RecipientRepository
}

// NewRecipientUseCase construye el caso de uso.
func NewRecipientUseCase(repo repository.RecipientRepository) *RecipientUseCase {
	return &RecipientUseCase{repo: repo}
}

// Create crea un consumidor externo.
func (uc *RecipientUseCase) Create(in dto.CreateRecipientRequest) (*dto.RecipientResponse, error) {
	recipient := &entity.Recipient{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Address:     in.Address,
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.repo.Create(recipient); err != nil {
		return nil, err
	}
	return toRecipientResponse(recipient), nil
}

// Update actualiza un consumidor externo.
func (uc *RecipientUseCase) Update(id string, in dto.UpdateRecipientRequest) (*dto.RecipientResponse, error) {
	recipient, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		recipient.Name = *in.Name
	}
	if in.Address != nil {
		recipient.Address = *in.Address
	}
	if in.Description != nil {
		recipient.Description = *in.Description
	}
	if err := uc.repo.Update(recipient); err != nil {
		return nil, err
	}
	return toRecipientResponse(recipient), nil
}

// List lista todos los consumidores externos.
func (uc *RecipientUseCase) List() ([]dto.RecipientResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.RecipientResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRecipientResponse(r))
	}
	return items, nil
}

// Delete elimina un consumidor externo.
func (uc *RecipientUseCase) Delete(id string) error {
	recipient, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if recipient == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toRecipientResponse(r *entity.Recipient) *dto.RecipientResponse {
	if r == nil {
		return nil
	}
	return &dto.RecipientResponse{
		ID:          r.ID,
		Name:        r.Name,
		Address:     r.Address,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}
