package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
	"github.com/tu-usuario/stock-ledger/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/stock-ledger/internal/interfaces/http"
)

// buildAPI monta la API completa sobre el backend en memoria.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	locations := memory.NewLocationRepository(store)
	items := memory.NewItemRepository(store)
	recipients := memory.NewRecipientRepository(store)
	suppliers := memory.NewSupplierRepository(store)
	stocks := memory.NewStockRepository(store)
	transfers := memory.NewTransferRepository(store)
	logs := memory.NewOperationLogRepository(store)
	txRunner := memory.NewTxRunner(store)

	_, err := ledger.EnsureTransit(locations)
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		LocationUC:  usecase.NewLocationUseCase(locations),
		ItemUC:      usecase.NewItemUseCase(items, stocks, transfers),
		RecipientUC: usecase.NewRecipientUseCase(recipients),
		SupplierUC:  usecase.NewSupplierUseCase(suppliers),
		TransferUC:  ledger.NewTransferUseCase(txRunner, locations, items, recipients, nil),
		ReceiveUC:   ledger.NewReceiveUseCase(txRunner, locations, items, nil),
		QueryUC:     ledger.NewQueryUseCase(stocks, transfers, locations, logs),
		JWTSecret:   testJWTSecret,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", validToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// Flujo completo por HTTP: registro maestro, recepción, orden, confirmación
// parcial y conciliación.
func TestAPI_FlujoCompletoDeTraslado(t *testing.T) {
	app := buildAPI(t)

	var source, dest dto.LocationResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/locations/",
		dto.CreateLocationRequest{Name: "Almacén Central", Code: "ALM-01"}, &source))
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/locations/",
		dto.CreateLocationRequest{Name: "Farmacia Norte", Code: "FAR-01"}, &dest))

	var item dto.ItemResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/items/",
		dto.CreateItemRequest{Name: "Paracetamol 500mg", RequiresLot: true}, &item))

	lot := "2026-08"
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/stock/receive",
		dto.ReceiveStockRequest{LocationID: source.ID, ItemID: item.ID, LotKey: &lot, Quantity: 100}, nil))

	var tr dto.TransferResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/transfers/",
		dto.CreateTransferRequest{
			Kind:                  "location",
			SourceLocationID:      source.ID,
			DestinationLocationID: &dest.ID,
			ItemID:                item.ID,
			LotKey:                &lot,
			Quantity:              30,
		}, &tr))
	assert.Equal(t, "pending", tr.Status)
	assert.Equal(t, testUsername, tr.CreatedBy)

	// Confirmación parcial: 20 de 30.
	var confirmed dto.TransferResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/transfers/"+tr.ID+"/confirm",
		dto.ConfirmTransferRequest{QuantityReceived: 20}, &confirmed))
	assert.Equal(t, "mismatch", confirmed.Status)
	assert.Equal(t, int64(20), confirmed.QuantityReceived)

	// Disponibilidad vía query.
	var avail dto.AvailabilityResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/stock/availability?location_id=%s&item_id=%s&lot_key=%s", source.ID, item.ID, lot),
		nil, &avail))
	assert.Equal(t, int64(70), avail.Quantity)

	// Conciliación: devolver el remanente al origen.
	var resolved dto.TransferResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, "/api/transfers/"+tr.ID+"/resolve",
		dto.ResolveMismatchRequest{Action: "return_source"}, &resolved))
	assert.Equal(t, "resolved", resolved.Status)

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/api/stock/availability?location_id=%s&item_id=%s&lot_key=%s", source.ID, item.ID, lot),
		nil, &avail))
	assert.Equal(t, int64(80), avail.Quantity)

	// El rastro de auditoría registró cada mutación.
	var logs []dto.OperationLogResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/stock/logs", nil, &logs))
	assert.Len(t, logs, 4)
}

func TestAPI_ErroresDeDominioSeTraducenAHTTP(t *testing.T) {
	app := buildAPI(t)

	var source, dest dto.LocationResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/locations/",
		dto.CreateLocationRequest{Name: "Almacén", Code: "ALM-01"}, &source))
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/locations/",
		dto.CreateLocationRequest{Name: "Farmacia", Code: "FAR-01"}, &dest))
	var item dto.ItemResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/items/",
		dto.CreateItemRequest{Name: "Gasas"}, &item))

	// Stock insuficiente -> 409 con su código propio.
	var errResp dto.ErrorResponse
	status := doJSON(t, app, http.MethodPost, "/api/transfers/",
		dto.CreateTransferRequest{
			Kind:                  "location",
			SourceLocationID:      source.ID,
			DestinationLocationID: &dest.ID,
			ItemID:                item.ID,
			Quantity:              10,
		}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	// Orden inexistente -> 404.
	status = doJSON(t, app, http.MethodPost, "/api/transfers/no-existe/confirm",
		dto.ConfirmTransferRequest{QuantityReceived: 1}, &errResp)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", errResp.Code)

	// Código de ubicación duplicado -> 409.
	status = doJSON(t, app, http.MethodPost, "/api/locations/",
		dto.CreateLocationRequest{Name: "Otro", Code: "ALM-01"}, &errResp)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", errResp.Code)

	// Sin token -> 401.
	req := httptest.NewRequest(http.MethodGet, "/api/transfers/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAPI_HealthSinToken(t *testing.T) {
	app := buildAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
