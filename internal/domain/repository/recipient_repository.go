package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// RecipientRepository puerto de persistencia para consumidores externos (DIP).
type RecipientRepository interface {
	Create(recipient *entity.Recipient) error
	GetByID(id string) (*entity.Recipient, error)
	Update(recipient *entity.Recipient) error
	List() ([]*entity.Recipient, error)
	Delete(id string) error
}
