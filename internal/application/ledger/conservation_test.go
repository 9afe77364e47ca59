package ledger_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// TestConservacion_SecuenciaAleatoria aplica una secuencia aleatoria de
// operaciones del ledger y comprueba tras cada una la ley de conservación:
// la suma de todas las cantidades no dadas de baja (tránsito incluido) es
// igual a lo recibido menos lo que salió del sistema
// (entregas a consumidores, descartes y bajas).
func TestConservacion_SecuenciaAleatoria(t *testing.T) {
	rng := rand.New(rand.NewSource(20260829))
	ctx := context.Background()

	e := newEnv(t)
	locA := e.addLocation(t, "Almacén A", "ALM-A")
	locB := e.addLocation(t, "Almacén B", "ALM-B")
	recipient := e.addRecipient(t, "Hospital")
	item := e.addItem(t, "Suero fisiológico", true)
	lot := strPtr("2026-08")

	var received, left int64 // entradas al sistema y salidas del sistema
	var pending []string     // órdenes pending para confirmar, rechazar o editar
	var mismatched []string

	systemTotal := func() int64 {
		all, err := e.queries.Stock(true, false)
		require.NoError(t, err)
		var total int64
		for _, rec := range all {
			if rec.ItemID == item.ID {
				total += rec.Quantity
			}
		}
		return total
	}

	locations := []*entity.Location{locA, locB}

	for i := 0; i < 400; i++ {
		switch rng.Intn(7) {
		case 0: // recepción directa
			qty := int64(rng.Intn(50) + 1)
			loc := locations[rng.Intn(2)]
			err := e.receive.Receive(ctx, ledger.ReceiveInput{
				LocationID: loc.ID,
				ItemID:     item.ID,
				LotKey:     lot,
				Quantity:   qty,
				Actor:      testActor,
			})
			if err == nil {
				received += qty
			} else {
				// Solo un registro dado de baja rechaza recepciones.
				require.ErrorIs(t, err, domain.ErrInvalidOperation)
			}
		case 1: // crear orden entre almacenes
			src := locations[rng.Intn(2)]
			dst := locA
			if src == locA {
				dst = locB
			}
			tr, err := e.uc.Create(ctx, ledger.CreateTransferInput{
				Kind:                  entity.TransferKindLocation,
				SourceLocationID:      src.ID,
				DestinationLocationID: &dst.ID,
				ItemID:                item.ID,
				LotKey:                lot,
				Quantity:              int64(rng.Intn(40) + 1),
				Actor:                 testActor,
			})
			if err == nil {
				pending = append(pending, tr.ID)
			} else {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		case 2: // crear entrega a consumidor
			tr, err := e.uc.Create(ctx, ledger.CreateTransferInput{
				Kind:             entity.TransferKindRecipient,
				SourceLocationID: locations[rng.Intn(2)].ID,
				RecipientID:      &recipient.ID,
				ItemID:           item.ID,
				LotKey:           lot,
				Quantity:         int64(rng.Intn(20) + 1),
				Actor:            testActor,
			})
			if err == nil {
				pending = append(pending, tr.ID)
			} else {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		case 3: // confirmar una orden pending (total o parcial)
			if len(pending) == 0 {
				continue
			}
			idx := rng.Intn(len(pending))
			id := pending[idx]
			got, err := e.queries.Transfer(id)
			require.NoError(t, err)
			qty := got.QuantityRequested
			partial := rng.Intn(2) == 0 && qty > 1
			if partial {
				qty = int64(rng.Int63n(got.QuantityRequested-1) + 1)
			}
			out, err := e.uc.Confirm(ctx, id, qty, testActor)
			require.NoError(t, err)
			if got.Kind == entity.TransferKindRecipient {
				left += qty
			}
			pending = append(pending[:idx], pending[idx+1:]...)
			if out.Status == entity.TransferStatusMismatch {
				mismatched = append(mismatched, id)
			}
		case 4: // rechazar una orden pending
			if len(pending) == 0 {
				continue
			}
			idx := rng.Intn(len(pending))
			_, err := e.uc.Reject(ctx, pending[idx], testActor)
			require.NoError(t, err)
			pending = append(pending[:idx], pending[idx+1:]...)
		case 5: // eliminar una orden pending
			if len(pending) == 0 {
				continue
			}
			idx := rng.Intn(len(pending))
			require.NoError(t, e.uc.Delete(ctx, pending[idx], testActor))
			pending = append(pending[:idx], pending[idx+1:]...)
		case 6: // resolver una orden en mismatch
			if len(mismatched) == 0 {
				continue
			}
			idx := rng.Intn(len(mismatched))
			id := mismatched[idx]
			got, err := e.queries.Transfer(id)
			require.NoError(t, err)
			actions := []string{entity.ResolveActionDiscard, entity.ResolveActionReturnToSource, entity.ResolveActionCreditDestination}
			action := actions[rng.Intn(len(actions))]
			_, err = e.uc.ResolveMismatch(ctx, id, ledger.ResolveMismatchInput{Action: action, Actor: testActor})
			if action == entity.ResolveActionCreditDestination && got.Kind != entity.TransferKindLocation {
				require.ErrorIs(t, err, domain.ErrInvalidOperation)
				continue
			}
			require.NoError(t, err)
			if action == entity.ResolveActionDiscard {
				left += got.Remainder()
			}
			mismatched = append(mismatched[:idx], mismatched[idx+1:]...)
		}

		require.Equal(t, received-left, systemTotal(),
			"conservación violada tras la operación %d", i)
	}

	// Ninguna cantidad quedó negativa.
	all, err := e.queries.Stock(true, true)
	require.NoError(t, err)
	for _, rec := range all {
		assert.GreaterOrEqual(t, rec.Quantity, int64(0))
	}
}
