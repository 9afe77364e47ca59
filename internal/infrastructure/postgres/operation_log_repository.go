package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.OperationLogRepository = (*OperationLogRepo)(nil)

// OperationLogRepo implementación del rastro de auditoría sobre PostgreSQL.
// Las filas se insertan en la misma transacción que la mutación que auditan.
type OperationLogRepo struct {
	q Querier
}

// NewOperationLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationLogRepository(q Querier) *OperationLogRepo {
	return &OperationLogRepo{q: q}
}

// Create inserta una entrada de auditoría.
func (r *OperationLogRepo) Create(log *entity.OperationLog) error {
	query := `
		INSERT INTO operation_logs (id, actor, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		log.ID, log.Actor, log.Action, log.Details, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert operation log: %w", err)
	}
	return nil
}

// List entradas de auditoría paginadas, más recientes primero.
func (r *OperationLogRepo) List(limit, offset int) ([]*entity.OperationLog, error) {
	query := `
		SELECT id, actor, action, details, created_at
		FROM operation_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list operation logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.OperationLog
	for rows.Next() {
		var l entity.OperationLog
		if err := rows.Scan(&l.ID, &l.Actor, &l.Action, &l.Details, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operation log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
