package entity

import "time"

// Tipos de orden de traslado.
const (
	TransferKindLocation  = "location"  // almacén a almacén
	TransferKindRecipient = "recipient" // entrega a consumidor externo
	TransferKindDisposal  = "disposal"  // destrucción de stock
)

// Estados del ciclo de vida de una orden.
// pending es el único estado inicial; confirmed, rejected y resolved son
// terminales. Una orden pending eliminada desaparece del registro.
const (
	TransferStatusPending   = "pending"
	TransferStatusConfirmed = "confirmed"
	TransferStatusMismatch  = "mismatch"
	TransferStatusRejected  = "rejected"
	TransferStatusResolved  = "resolved"
)

// Acciones de resolución de una orden en mismatch.
const (
	ResolveActionDiscard           = "discard"
	ResolveActionReturnToSource    = "return_source"
	ResolveActionCreditDestination = "credit_destination"
)

// Transfer una orden de movimiento de stock entre ubicaciones, con su propio
// ciclo de vida. Mientras está pending, exactamente QuantityRequested unidades
// permanecen en la ubicación TRANSIT a cuenta de esta orden (ley de conservación).
type Transfer struct {
	ID                    string
	Kind                  string
	SourceLocationID      string
	DestinationLocationID *string // solo para kind=location
	RecipientID           *string // solo para kind=recipient; excluyente con destino
	ItemID                string
	LotKey                *string
	QuantityRequested     int64 // fija al crear, > 0
	QuantityReceived      int64 // 0 hasta la confirmación; inmutable después
	Status                string
	TransferDate          string // fecha informada por el cliente (formato libre)
	CreatedBy             string
	CreatedAt             time.Time
	ConfirmedAt           *time.Time
	ResolvedAt            *time.Time
}

// Remainder cantidad aún retenida en TRANSIT para una orden en mismatch.
func (t *Transfer) Remainder() int64 {
	return t.QuantityRequested - t.QuantityReceived
}
