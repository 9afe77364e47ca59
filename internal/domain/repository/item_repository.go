package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// ItemRepository puerto de persistencia para artículos (DIP).
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	Update(item *entity.Item) error
	List() ([]*entity.Item, error)
	Delete(id string) error
}
