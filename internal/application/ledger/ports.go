package ledger

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda mutación del ledger (Create, Confirm,
// Reject, Delete, Edit, Resolve) corre completa dentro de un Run: o se aplica
// todo o no se aplica nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		transferRepo repository.TransferRepository,
		logRepo repository.OperationLogRepository,
	) error) error
}
