package dto

import "time"

// ReceiveStockRequest body para registrar una recepción directa de stock.
// LotKey nulo para artículos sin seguimiento de lote; la cadena vacía no es válida.
type ReceiveStockRequest struct {
	LocationID string  `json:"location_id" validate:"required"`
	ItemID     string  `json:"item_id" validate:"required"`
	LotKey     *string `json:"lot_key,omitempty"`
	SupplierID *string `json:"supplier_id,omitempty"`
	Quantity   int64   `json:"quantity" validate:"required,gt=0"`
	EntryDate  string  `json:"entry_date,omitempty"`
}

// StockRecordResponse salida de un registro de stock.
type StockRecordResponse struct {
	ID         string    `json:"id"`
	LocationID string    `json:"location_id"`
	ItemID     string    `json:"item_id"`
	LotKey     *string   `json:"lot_key,omitempty"`
	SupplierID *string   `json:"supplier_id,omitempty"`
	Quantity   int64     `json:"quantity"`
	EntryDate  string    `json:"entry_date,omitempty"`
	IsDisposed bool      `json:"is_disposed"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AvailabilityResponse disponibilidad de un artículo/lote en una ubicación.
type AvailabilityResponse struct {
	LocationID string  `json:"location_id"`
	ItemID     string  `json:"item_id"`
	LotKey     *string `json:"lot_key,omitempty"`
	Quantity   int64   `json:"quantity"`
}

// OperationLogResponse una entrada del rastro de auditoría.
type OperationLogResponse struct {
	ID        string    `json:"id"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
