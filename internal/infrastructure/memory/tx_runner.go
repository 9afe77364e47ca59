package memory

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// TxRunner transacciones sobre el almacén en memoria: toma una instantánea del
// estado mutable, ejecuta la función y, si falla, restaura la instantánea.
// Las transacciones se serializan entre sí (txMu), que de paso cumple el papel
// de los bloqueos de fila de PostgreSQL.
type TxRunner struct {
	store *Store
}

// NewTxRunner crea el ejecutor transaccional del almacén.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

var _ ledger.TxRunner = (*TxRunner)(nil)

// Run ejecuta fn con repositorios atados al almacén. Si fn devuelve error o el
// contexto está cancelado, el estado queda como antes de la llamada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
	logRepo repository.OperationLogRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	snap := r.store.takeSnapshot()
	err := fn(
		NewStockRepository(r.store),
		NewTransferRepository(r.store),
		NewOperationLogRepository(r.store),
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
