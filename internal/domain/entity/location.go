package entity

import "time"

// TransitCode código reservado de la ubicación virtual de tránsito.
// Se crea una sola vez al inicializar el sistema y nunca se elimina.
const TransitCode = "TRANSIT"

// Location representa un lugar físico o virtual que mantiene stock
// (almacén, farmacia, o el punto de retención TRANSIT).
type Location struct {
	ID        string
	Name      string
	Code      string // único
	Address   string
	Manager   string
	IsVirtual bool // true solo para ubicaciones de sistema como TRANSIT
	CreatedAt time.Time
	UpdatedAt time.Time
}
