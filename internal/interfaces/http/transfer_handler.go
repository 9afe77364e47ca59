package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/ledger"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// TransferHandler maneja las peticiones HTTP del ciclo de vida de órdenes de traslado (protegido).
type TransferHandler struct {
	uc      *ledger.TransferUseCase
	queries *ledger.QueryUseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *ledger.TransferUseCase, queries *ledger.QueryUseCase) *TransferHandler {
	return &TransferHandler{uc: uc, queries: queries}
}

// Create crea una orden de traslado; descuenta del origen y retiene en tránsito.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Create(c.Context(), ledger.CreateTransferInput{
		Kind:                  in.Kind,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		RecipientID:           in.RecipientID,
		ItemID:                in.ItemID,
		LotKey:                in.LotKey,
		Quantity:              in.Quantity,
		TransferDate:          in.TransferDate,
		Actor:                 actor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(t))
}

// List lista órdenes, opcionalmente filtradas por estado (?status=pending).
func (h *TransferHandler) List(c *fiber.Ctx) error {
	list, err := h.queries.Transfers(c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTransferResponse(t))
	}
	return c.JSON(out)
}

// GetByID devuelve una orden por id.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	t, err := h.queries.Transfer(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// Confirm confirma la recepción con la cantidad recibida. Si es menor a la
// solicitada, la orden queda en mismatch con el resto retenido en tránsito.
func (h *TransferHandler) Confirm(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ConfirmTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Confirm(c.Context(), c.Params("id"), in.QuantityReceived, actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// Reject rechaza una orden pending y devuelve lo retenido al origen.
func (h *TransferHandler) Reject(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	t, err := h.uc.Reject(c.Context(), c.Params("id"), actor)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// Delete elimina una orden pending, devolviendo lo retenido al origen.
func (h *TransferHandler) Delete(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Delete(c.Context(), c.Params("id"), actor); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden eliminada"})
}

// Edit reemplaza origen, artículo, lote y cantidad de una orden pending.
func (h *TransferHandler) Edit(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.EditTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.Edit(c.Context(), c.Params("id"), ledger.EditTransferInput{
		SourceLocationID: in.SourceLocationID,
		ItemID:           in.ItemID,
		LotKey:           in.LotKey,
		Quantity:         in.Quantity,
		Actor:            actor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

// Resolve resuelve una orden en mismatch con la acción indicada
// (discard, return_source o credit_destination).
func (h *TransferHandler) Resolve(c *fiber.Ctx) error {
	actor := GetActor(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ResolveMismatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.ResolveMismatch(c.Context(), c.Params("id"), ledger.ResolveMismatchInput{
		Action: in.Action,
		Notes:  in.Notes,
		Actor:  actor,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toTransferResponse(t))
}

func toTransferResponse(t *entity.Transfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:                    t.ID,
		Kind:                  t.Kind,
		SourceLocationID:      t.SourceLocationID,
		DestinationLocationID: t.DestinationLocationID,
		RecipientID:           t.RecipientID,
		ItemID:                t.ItemID,
		LotKey:                t.LotKey,
		QuantityRequested:     t.QuantityRequested,
		QuantityReceived:      t.QuantityReceived,
		Status:                t.Status,
		TransferDate:          t.TransferDate,
		CreatedBy:             t.CreatedBy,
		CreatedAt:             t.CreatedAt,
		ConfirmedAt:           t.ConfirmedAt,
		ResolvedAt:            t.ResolvedAt,
	}
}
