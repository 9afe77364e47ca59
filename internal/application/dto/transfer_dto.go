package dto

import "time"

// CreateTransferRequest body para crear una orden de traslado.
// kind: location (almacén a almacén, destination_location_id obligatorio),
// recipient (consumidor externo, recipient_id obligatorio) o disposal (baja).
type CreateTransferRequest struct {
	Kind                  string  `json:"kind" validate:"required,oneof=location recipient disposal"`
	SourceLocationID      string  `json:"source_location_id" validate:"required"`
	DestinationLocationID *string `json:"destination_location_id,omitempty"`
	RecipientID           *string `json:"recipient_id,omitempty"`
	ItemID                string  `json:"item_id" validate:"required"`
	LotKey                *string `json:"lot_key,omitempty"`
	Quantity              int64   `json:"quantity" validate:"required,gt=0"`
	TransferDate          string  `json:"transfer_date,omitempty"`
}

// ConfirmTransferRequest body para confirmar con la cantidad recibida.
type ConfirmTransferRequest struct {
	QuantityReceived int64 `json:"quantity_received" validate:"required,gt=0"`
}

// EditTransferRequest body para editar una orden pending (deshacer y rehacer).
type EditTransferRequest struct {
	SourceLocationID string  `json:"source_location_id" validate:"required"`
	ItemID           string  `json:"item_id" validate:"required"`
	LotKey           *string `json:"lot_key,omitempty"`
	Quantity         int64   `json:"quantity" validate:"required,gt=0"`
}

// ResolveMismatchRequest body para resolver una orden en mismatch.
type ResolveMismatchRequest struct {
	Action string `json:"action" validate:"required,oneof=discard return_source credit_destination"`
	Notes  string `json:"notes,omitempty"`
}

// TransferResponse salida de una orden de traslado.
type TransferResponse struct {
	ID                    string     `json:"id"`
	Kind                  string     `json:"kind"`
	SourceLocationID      string     `json:"source_location_id"`
	DestinationLocationID *string    `json:"destination_location_id,omitempty"`
	RecipientID           *string    `json:"recipient_id,omitempty"`
	ItemID                string     `json:"item_id"`
	LotKey                *string    `json:"lot_key,omitempty"`
	QuantityRequested     int64      `json:"quantity_requested"`
	QuantityReceived      int64      `json:"quantity_received"`
	Status                string     `json:"status"`
	TransferDate          string     `json:"transfer_date,omitempty"`
	CreatedBy             string     `json:"created_by"`
	CreatedAt             time.Time  `json:"created_at"`
	ConfirmedAt           *time.Time `json:"confirmed_at,omitempty"`
	ResolvedAt            *time.Time `json:"resolved_at,omitempty"`
}
