package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// lot_key anulable se compara con IS NOT DISTINCT FROM para que NULL case con NULL.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, location_id, item_id, lot_key, supplier_id, quantity, entry_date, is_disposed, created_at, updated_at`

// Get obtiene el registro de la clave compuesta; (nil, nil) si no existe.
func (r *StockRepo) Get(locationID, itemID string, lotKey *string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE location_id = $1 AND item_id = $2 AND lot_key IS NOT DISTINCT FROM $3`
	return r.scanOne(query, locationID, itemID, lotKey)
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(locationID, itemID string, lotKey *string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE location_id = $1 AND item_id = $2 AND lot_key IS NOT DISTINCT FROM $3
		FOR UPDATE`
	return r.scanOne(query, locationID, itemID, lotKey)
}

func (r *StockRepo) scanOne(query string, args ...any) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&s.ID, &s.LocationID, &s.ItemID, &s.LotKey, &s.SupplierID,
		&s.Quantity, &s.EntryDate, &s.IsDisposed, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return &s, nil
}

// Upsert inserta o reemplaza el registro por su clave compuesta
// (índice único NULLS NOT DISTINCT sobre location_id, item_id, lot_key).
func (r *StockRepo) Upsert(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (location_id, item_id, lot_key)
		DO UPDATE SET supplier_id = EXCLUDED.supplier_id,
		              quantity    = EXCLUDED.quantity,
		              entry_date  = EXCLUDED.entry_date,
		              is_disposed = EXCLUDED.is_disposed,
		              updated_at  = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.LocationID, rec.ItemID, rec.LotKey, rec.SupplierID,
		rec.Quantity, rec.EntryDate, rec.IsDisposed, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stock record: %w", err)
	}
	return nil
}

// ListByLocation registros de una ubicación, ordenados por lote.
func (r *StockRepo) ListByLocation(locationID string) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records
		WHERE location_id = $1
		ORDER BY lot_key NULLS FIRST`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list stock by location: %w", err)
	}
	return scanStockRows(rows)
}

// List registros de todas las ubicaciones; por defecto excluye las virtuales
// y los registros dados de baja.
func (r *StockRepo) List(includeVirtual, includeDisposed bool) ([]*entity.StockRecord, error) {
	query := `
		SELECT s.id, s.location_id, s.item_id, s.lot_key, s.supplier_id,
		       s.quantity, s.entry_date, s.is_disposed, s.created_at, s.updated_at
		FROM stock_records s
		JOIN locations l ON l.id = s.location_id
		WHERE ($1 OR NOT l.is_virtual)
		  AND ($2 OR NOT s.is_disposed)
		ORDER BY s.lot_key NULLS FIRST`
	rows, err := r.q.Query(context.Background(), query, includeVirtual, includeDisposed)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return scanStockRows(rows)
}

// CountByItem referencias de stock a un artículo.
func (r *StockRepo) CountByItem(itemID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_records WHERE item_id = $1`, itemID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock by item: %w", err)
	}
	return n, nil
}

func scanStockRows(rows pgx.Rows) ([]*entity.StockRecord, error) {
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		var s entity.StockRecord
		if err := rows.Scan(
			&s.ID, &s.LocationID, &s.ItemID, &s.LotKey, &s.SupplierID,
			&s.Quantity, &s.EntryDate, &s.IsDisposed, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
