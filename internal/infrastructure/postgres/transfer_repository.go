package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, kind, source_location_id, destination_location_id, recipient_id,
	item_id, lot_key, quantity_requested, quantity_received, status,
	transfer_date, created_by, created_at, confirmed_at, resolved_at`

// Create persiste una nueva orden.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Kind, t.SourceLocationID, t.DestinationLocationID, t.RecipientID,
		t.ItemID, t.LotKey, t.QuantityRequested, t.QuantityReceived, t.Status,
		t.TransferDate, t.CreatedBy, t.CreatedAt, t.ConfirmedAt, t.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID; (nil, nil) si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	return r.scanOne(`SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden y bloquea la fila: mutaciones concurrentes
// sobre la misma orden se excluyen mutuamente.
func (r *TransferRepo) GetForUpdate(id string) (*entity.Transfer, error) {
	return r.scanOne(`SELECT `+transferColumns+` FROM transfers WHERE id = $1 FOR UPDATE`, id)
}

func (r *TransferRepo) scanOne(query string, args ...any) (*entity.Transfer, error) {
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&t.ID, &t.Kind, &t.SourceLocationID, &t.DestinationLocationID, &t.RecipientID,
		&t.ItemID, &t.LotKey, &t.QuantityRequested, &t.QuantityReceived, &t.Status,
		&t.TransferDate, &t.CreatedBy, &t.CreatedAt, &t.ConfirmedAt, &t.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	return &t, nil
}

// Update actualiza una orden existente.
func (r *TransferRepo) Update(t *entity.Transfer) error {
	query := `
		UPDATE transfers
		SET kind = $2, source_location_id = $3, destination_location_id = $4,
		    recipient_id = $5, item_id = $6, lot_key = $7,
		    quantity_requested = $8, quantity_received = $9, status = $10,
		    transfer_date = $11, confirmed_at = $12, resolved_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Kind, t.SourceLocationID, t.DestinationLocationID, t.RecipientID,
		t.ItemID, t.LotKey, t.QuantityRequested, t.QuantityReceived, t.Status,
		t.TransferDate, t.ConfirmedAt, t.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	return nil
}

// Delete elimina la orden (solo pending: lo garantiza el caso de uso).
func (r *TransferRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transfers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transfer: %w", err)
	}
	return nil
}

// ListByStatus lista órdenes por estado, más recientes primero.
func (r *TransferRepo) ListByStatus(status string) ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers WHERE status = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, status)
	if err != nil {
		return nil, fmt.Errorf("list transfers by status: %w", err)
	}
	return scanTransferRows(rows)
}

// List lista todas las órdenes, más recientes primero.
func (r *TransferRepo) List() ([]*entity.Transfer, error) {
	query := `SELECT ` + transferColumns + ` FROM transfers ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	return scanTransferRows(rows)
}

// CountByItem referencias de órdenes a un artículo.
func (r *TransferRepo) CountByItem(itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transfers WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transfers by item: %w", err)
	}
	return n, nil
}

func scanTransferRows(rows pgx.Rows) ([]*entity.Transfer, error) {
	defer rows.Close()
	var list []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(
			&t.ID, &t.Kind, &t.SourceLocationID, &t.DestinationLocationID, &t.RecipientID,
			&t.ItemID, &t.LotKey, &t.QuantityRequested, &t.QuantityReceived, &t.Status,
			&t.TransferDate, &t.CreatedBy, &t.CreatedAt, &t.ConfirmedAt, &t.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
