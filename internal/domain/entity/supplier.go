package entity

import "time"

// Supplier proveedor de referencia en los registros de stock.
// La referencia es opcional y se conserva tal cual en los movimientos:
// un registro sin proveedor sigue sin proveedor, nunca se rellena un valor por defecto.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	CreatedAt time.Time
}
