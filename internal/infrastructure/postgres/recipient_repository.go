package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.RecipientRepository = (*RecipientRepo)(nil)

// RecipientRepo implementación del puerto RecipientRepository sobre PostgreSQL.
type RecipientRepo struct {
	q Querier
}

// NewRecipientRepository construye el adaptador para consumidores externos.
func NewRecipientRepository(q Querier) *RecipientRepo {
	return &RecipientRepo{q: q}
}

// Create persiste un nuevo consumidor externo.
func (r *RecipientRepo) Create(recipient *entity.Recipient) error {
	query := `
		INSERT INTO recipients (id, name, address, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		recipient.ID, recipient.Name, recipient.Address, recipient.Description, recipient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recipient: %w", err)
	}
	return nil
}

// GetByID obtiene un consumidor externo por ID; (nil, nil) si no existe.
func (r *RecipientRepo) GetByID(id string) (*entity.Recipient, error) {
	var rec entity.Recipient
	err := r.q.QueryRow(context.Background(),
		`SELECT id, name, address, description, created_at FROM recipients WHERE id = $1`, id).Scan(
		&rec.ID, &rec.Name, &rec.Address, &rec.Description, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipient: %w", err)
	}
	return &rec, nil
}

// Update actualiza un consumidor externo.
func (r *RecipientRepo) Update(recipient *entity.Recipient) error {
	query := `
		UPDATE recipients SET name = $2, address = $3, description = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		recipient.ID, recipient.Name, recipient.Address, recipient.Description,
	)
	if err != nil {
		return fmt.Errorf("update recipient: %w", err)
	}
	return nil
}

// List lista consumidores externos por nombre.
func (r *RecipientRepo) List() ([]*entity.Recipient, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, name, address, description, created_at FROM recipients ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipient
	for rows.Next() {
		var rec entity.Recipient
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Address, &rec.Description, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipient: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

// Delete elimina un consumidor externo por ID.
func (r *RecipientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recipients WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete recipient: %w", err)
	}
	return nil
}
