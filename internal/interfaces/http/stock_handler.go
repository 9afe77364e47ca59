package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// StockHandler maneja las peticiones HTTP de recepciones, consultas de stock y auditoría (protegido).
type StockHandler struct {
	receive *ledger.ReceiveUseCase
	queries *ledger.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(receive *ledger.ReceiveUseCase, queries *ledger.QueryUseCase) *StockHandler {
	return &StockHandler{receive: receive, queries: queries}
}

// Receive registra una recepción directa de stock en una ubicación.
func (h *StockHandler) Receive(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.receive.Receive(c.Context(), ledger.ReceiveInput{
		LocationID: in.LocationID,
		ItemID:     in.ItemID,
		LotKey:     in.LotKey,
		SupplierID: in.SupplierID,
		Quantity:   in.Quantity,
		EntryDate:  in.EntryDate,
		Actor:      actor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "recepción registrada"})
}

// List lista los registros de stock de las ubicaciones físicas.
// ?include_disposed=true incluye los dados de baja (auditoría).
func (h *StockHandler) List(c *fiber.Ctx) error {
	includeDisposed := c.QueryBool("include_disposed")
	list, err := h.queries.Stock(false, includeDisposed)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponses(list))
}

// Transit lista lo retenido en la ubicación virtual de tránsito.
func (h *StockHandler) Transit(c *fiber.Ctx) error {
	list, err := h.queries.TransitStock()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toStockResponses(list))
}

// Availability consulta la cantidad disponible de un artículo/lote en una ubicación.
func (h *StockHandler) Availability(c *fiber.Ctx) error {
	locationID := c.Query("location_id")
	itemID := c.Query("item_id")
	if locationID == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id e item_id son obligatorios"})
	}
	var lotKey *string
	if lot := c.Query("lot_key"); lot != "" {
		lotKey = &lot
	}
	qty, err := h.queries.Available(locationID, itemID, lotKey)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AvailabilityResponse{
		LocationID: locationID,
		ItemID:     itemID,
		LotKey:     lotKey,
		Quantity:   qty,
	})
}

// Logs devuelve el rastro de auditoría paginado, más reciente primero.
func (h *StockHandler) Logs(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Limit:  parseIntQuery(c, "limit"),
		Offset: parseIntQuery(c, "offset"),
	}
	page.DefaultPage()
	logs, err := h.queries.Logs(page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.OperationLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.OperationLogResponse{
			ID:        l.ID,
			Actor:     l.Actor,
			Action:    l.Action,
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		})
	}
	return c.JSON(out)
}

func parseIntQuery(c *fiber.Ctx, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func toStockResponses(list []*entity.StockRecord) []dto.StockRecordResponse {
	out := make([]dto.StockRecordResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, dto.StockRecordResponse{
			ID:         rec.ID,
			LocationID: rec.LocationID,
			ItemID:     rec.ItemID,
			LotKey:     rec.LotKey,
			SupplierID: rec.SupplierID,
			Quantity:   rec.Quantity,
			EntryDate:  rec.EntryDate,
			IsDisposed: rec.IsDisposed,
			UpdatedAt:  rec.UpdatedAt,
		})
	}
	return out
}
