package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Ubicaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestLocation_CodigoTransitReservado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(memory.NewLocationRepository(store))

	_, err := uc.Create(dto.CreateLocationRequest{Name: "Falsa", Code: entity.TransitCode})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocation_CodigoDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(memory.NewLocationRepository(store))

	_, err := uc.Create(dto.CreateLocationRequest{Name: "Almacén", Code: "ALM-01"})
	require.NoError(t, err)
	_, err = uc.Create(dto.CreateLocationRequest{Name: "Otro", Code: "ALM-01"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocation_VirtualNoSeTocaPorCRUD(t *testing.T) {
	store := memory.NewStore()
	locations := memory.NewLocationRepository(store)
	transit, err := ledger.EnsureTransit(locations)
	require.NoError(t, err)

	uc := usecase.NewLocationUseCase(locations)

	_, err = uc.Update(transit.ID, dto.UpdateLocationRequest{Name: strPtr("Otra")})
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.ErrorIs(t, uc.Delete(transit.ID), domain.ErrInvalidOperation)

	// El listado por defecto no incluye la virtual.
	list, err := uc.List(false)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = uc.List(true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsVirtual)
}

func TestLocation_UpdateParcial(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewLocationUseCase(memory.NewLocationRepository(store))

	created, err := uc.Create(dto.CreateLocationRequest{Name: "Almacén", Code: "ALM-01", Address: "Calle 1"})
	require.NoError(t, err)

	updated, err := uc.Update(created.ID, dto.UpdateLocationRequest{Manager: strPtr("Ana")})
	require.NoError(t, err)
	assert.Equal(t, "Almacén", updated.Name)
	assert.Equal(t, "Calle 1", updated.Address)
	assert.Equal(t, "Ana", updated.Manager)
	assert.Equal(t, "ALM-01", updated.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículos
// ──────────────────────────────────────────────────────────────────────────────

func TestItem_DeleteBloqueadoConReferencias(t *testing.T) {
	store := memory.NewStore()
	locations := memory.NewLocationRepository(store)
	items := memory.NewItemRepository(store)
	stocks := memory.NewStockRepository(store)
	transfers := memory.NewTransferRepository(store)
	_, err := ledger.EnsureTransit(locations)
	require.NoError(t, err)

	itemUC := usecase.NewItemUseCase(items, stocks, transfers)
	locUC := usecase.NewLocationUseCase(locations)
	receiveUC := ledger.NewReceiveUseCase(memory.NewTxRunner(store), locations, items, nil)

	item, err := itemUC.Create(dto.CreateItemRequest{Name: "Guantes"})
	require.NoError(t, err)
	loc, err := locUC.Create(dto.CreateLocationRequest{Name: "Almacén", Code: "ALM-01"})
	require.NoError(t, err)

	require.NoError(t, receiveUC.Receive(context.Background(), ledger.ReceiveInput{
		LocationID: loc.ID,
		ItemID:     item.ID,
		Quantity:   5,
		Actor:      "tester",
	}))

	assert.ErrorIs(t, itemUC.Delete(item.ID), domain.ErrConflict)
}

func TestItem_DeleteSinReferencias(t *testing.T) {
	store := memory.NewStore()
	itemUC := usecase.NewItemUseCase(
		memory.NewItemRepository(store),
		memory.NewStockRepository(store),
		memory.NewTransferRepository(store),
	)

	item, err := itemUC.Create(dto.CreateItemRequest{Name: "Guantes"})
	require.NoError(t, err)
	require.NoError(t, itemUC.Delete(item.ID))
	_, err = itemUC.GetByID(item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_UpdateNoTocaRequiresLot(t *testing.T) {
	store := memory.NewStore()
	itemUC := usecase.NewItemUseCase(
		memory.NewItemRepository(store),
		memory.NewStockRepository(store),
		memory.NewTransferRepository(store),
	)

	item, err := itemUC.Create(dto.CreateItemRequest{Name: "Amoxicilina", RequiresLot: true})
	require.NoError(t, err)

	updated, err := itemUC.Update(item.ID, dto.UpdateItemRequest{Name: strPtr("Amoxicilina 500mg")})
	require.NoError(t, err)
	assert.Equal(t, "Amoxicilina 500mg", updated.Name)
	assert.True(t, updated.RequiresLot)
}
