package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-ledger/internal/application/dto"
	"github.com/tu-usuario/stock-ledger/internal/application/usecase"
)

// RecipientHandler maneja las peticiones HTTP de consumidores externos (protegido).
type RecipientHandler struct {
	uc *usecase.RecipientUseCase
}

// NewRecipientHandler construye el handler.
func NewRecipientHandler(uc *usecase.RecipientUseCase) *RecipientHandler {
	return &RecipientHandler{uc: uc}
}

// Create crea un consumidor externo.
func (h *RecipientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRecipientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update actualiza un consumidor externo.
func (h *RecipientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRecipientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista los consumidores externos.
func (h *RecipientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un consumidor externo.
func (h *RecipientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "consumidor eliminado"})
}
