package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// StockStore: fusión por clave compuesta, descuentos y bajas
// ──────────────────────────────────────────────────────────────────────────────

func newStore(t *testing.T) *ledger.StockStore {
	t.Helper()
	return ledger.NewStockStore(memory.NewStockRepository(memory.NewStore()))
}

func TestStockStore_RecepcionesRepetidasSeFusionan(t *testing.T) {
	s := newStore(t)
	lot := strPtr("2026-08")

	require.NoError(t, s.UpsertReceive("loc", "item", lot, 40, nil))
	require.NoError(t, s.UpsertReceive("loc", "item", lot, 60, nil))

	qty, err := s.Available("loc", "item", lot)
	require.NoError(t, err)
	assert.Equal(t, int64(100), qty)
}

func TestStockStore_NilYCadenaSonClavesDistintas(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.UpsertReceive("loc", "item", nil, 10, nil))
	require.NoError(t, s.UpsertReceive("loc", "item", strPtr("L-1"), 20, nil))

	qtyNil, err := s.Available("loc", "item", nil)
	require.NoError(t, err)
	qtyLot, err := s.Available("loc", "item", strPtr("L-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), qtyNil)
	assert.Equal(t, int64(20), qtyLot)
}

func TestStockStore_DeductHastaCeroConservaElRegistro(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.UpsertReceive("loc", "item", nil, 30, nil))
	rec, err := s.Deduct("loc", "item", nil, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Quantity)

	// El registro a cero sigue existiendo y admite nuevas recepciones.
	require.NoError(t, s.UpsertReceive("loc", "item", nil, 5, nil))
	qty, err := s.Available("loc", "item", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), qty)
}

func TestStockStore_DeductInsuficiente(t *testing.T) {
	s := newStore(t)

	// Registro inexistente.
	_, err := s.Deduct("loc", "item", nil, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Cantidad mayor a la disponible.
	require.NoError(t, s.UpsertReceive("loc", "item", nil, 10, nil))
	_, err = s.Deduct("loc", "item", nil, 11)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El fallo no cambió nada.
	qty, err := s.Available("loc", "item", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), qty)
}

func TestStockStore_CantidadesNoPositivas(t *testing.T) {
	s := newStore(t)

	assert.ErrorIs(t, s.UpsertReceive("loc", "item", nil, 0, nil), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, s.UpsertReceive("loc", "item", nil, -3, nil), domain.ErrInvalidQuantity)
	_, err := s.Deduct("loc", "item", nil, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestStockStore_ElProveedorSeAdoptaUnaSolaVez(t *testing.T) {
	repo := memory.NewStockRepository(memory.NewStore())
	s := ledger.NewStockStore(repo)

	// Sin proveedor al crear; se adopta en la siguiente recepción.
	require.NoError(t, s.UpsertReceive("loc", "item", nil, 10, nil))
	require.NoError(t, s.UpsertReceive("loc", "item", nil, 10, strPtr("prov-1")))
	rec, err := repo.Get("loc", "item", nil)
	require.NoError(t, err)
	require.NotNil(t, rec.SupplierID)
	assert.Equal(t, "prov-1", *rec.SupplierID)

	// Un proveedor ya asignado no se sobreescribe.
	require.NoError(t, s.UpsertReceive("loc", "item", nil, 10, strPtr("prov-2")))
	rec, err = repo.Get("loc", "item", nil)
	require.NoError(t, err)
	assert.Equal(t, "prov-1", *rec.SupplierID)
}

func TestStockStore_BajaExcluyeDeTodo(t *testing.T) {
	repo := memory.NewStockRepository(memory.NewStore())
	s := ledger.NewStockStore(repo)

	require.NoError(t, s.UpsertReceive("loc", "item", nil, 10, nil))
	require.NoError(t, s.MarkDisposed("loc", "item", nil))

	qty, err := s.Available("loc", "item", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)

	_, err = s.Deduct("loc", "item", nil, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.ErrorIs(t, s.UpsertReceive("loc", "item", nil, 1, nil), domain.ErrInvalidOperation)

	// La baja de un registro inexistente es ErrNotFound.
	assert.ErrorIs(t, s.MarkDisposed("loc", "otro", nil), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepción directa
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_FusionaYGuardaFechaDeEntrada(t *testing.T) {
	e := newEnv(t)
	loc := e.addLocation(t, "Almacén", "ALM-01")
	item := e.addItem(t, "Guantes", false)

	require.NoError(t, e.receive.Receive(context.Background(), ledger.ReceiveInput{
		LocationID: loc.ID,
		ItemID:     item.ID,
		Quantity:   40,
		EntryDate:  "2026-08-01",
		Actor:      testActor,
	}))
	require.NoError(t, e.receive.Receive(context.Background(), ledger.ReceiveInput{
		LocationID: loc.ID,
		ItemID:     item.ID,
		Quantity:   60,
		Actor:      testActor,
	}))

	recs, err := e.stocks.ListByLocation(loc.ID)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(100), recs[0].Quantity)
	assert.Equal(t, "2026-08-01", recs[0].EntryDate)
}

func TestReceive_EnTransitoRechazado(t *testing.T) {
	e := newEnv(t)
	item := e.addItem(t, "Guantes", false)

	err := e.receive.Receive(context.Background(), ledger.ReceiveInput{
		LocationID: e.transit.ID,
		ItemID:     item.ID,
		Quantity:   10,
		Actor:      testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
}

func TestReceive_ArticuloInexistente(t *testing.T) {
	e := newEnv(t)
	loc := e.addLocation(t, "Almacén", "ALM-01")

	err := e.receive.Receive(context.Background(), ledger.ReceiveInput{
		LocationID: loc.ID,
		ItemID:     "no-existe",
		Quantity:   10,
		Actor:      testActor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
