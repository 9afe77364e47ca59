package repository

import "github.com/tu-usuario/stock-ledger/internal/domain/entity"

// OperationLogRepository puerto de persistencia para el rastro de auditoría.
type OperationLogRepository interface {
	Create(log *entity.OperationLog) error
	List(limit, offset int) ([]*entity.OperationLog, error)
}
