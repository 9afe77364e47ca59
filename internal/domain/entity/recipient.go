package entity

import "time"

// Recipient consumidor externo: destino de órdenes de tipo "recipient".
// El stock entregado a un recipient sale del sistema (no se acredita a ninguna ubicación).
type Recipient struct {
	ID          string
	Name        string
	Address     string
	Description string
	CreatedAt   time.Time
}
