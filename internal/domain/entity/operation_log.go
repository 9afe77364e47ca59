package entity

import "time"

// OperationLog evento de auditoría: una fila por mutación exitosa del ledger,
// escrita en la misma transacción que la mutación.
type OperationLog struct {
	ID        string
	Actor     string
	Action    string
	Details   string
	CreatedAt time.Time
}
