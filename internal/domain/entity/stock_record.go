package entity

import "time"

// StockRecord fila única por (ubicación, artículo, lote): cantidad actual de un
// artículo/lote en una ubicación. La clave compuesta es única; recepciones
// repetidas sobre la misma clave se fusionan, nunca crean una segunda fila.
//
// LotKey es nil para artículos sin seguimiento de lote; nil y cadena vacía son
// valores distintos y la cadena vacía no es una clave válida.
type StockRecord struct {
	ID         string
	LocationID string
	ItemID     string
	LotKey     *string
	SupplierID *string // opcional; se propaga sin inventar valores por defecto
	Quantity   int64   // invariante: nunca negativa
	EntryDate  string  // fecha de recepción informada por el cliente (formato libre)
	IsDisposed bool    // true: excluido de disponibilidad y reportes, conservado para auditoría
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// LotMatches compara la clave de lote del registro con otra, tratando nil como
// valor propio (distinto de cualquier cadena).
func (s *StockRecord) LotMatches(lot *string) bool {
	if s.LotKey == nil || lot == nil {
		return s.LotKey == nil && lot == nil
	}
	return *s.LotKey == *lot
}
