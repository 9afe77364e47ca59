package entity

import "time"

// Item representa un bien rastreable (medicamento o herramienta).
// Inmutable una vez referenciado por stock o por órdenes de traslado:
// el borrado se bloquea mientras existan referencias.
type Item struct {
	ID          string
	Name        string
	Dose        string
	PackageType string
	Description string
	RequiresLot bool // true: todo movimiento exige clave de lote; false: la clave debe estar ausente
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
