package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario.
type InventoryHandler struct {
	uc *inventory.RegisterMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento ENTRADA/SALIDA
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "code, type (ENTRADA/SALIDA), quantity, user, note opcional"
// @Success      201   {object}  dto.MovementReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	receipt, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		Code:     in.Code,
		Type:     in.Type,
		Quantity: in.Quantity,
		User:     in.User,
		Note:     in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}

	log.Info().
		Str("codigo", receipt.Movement.Code).
		Str("tipo", receipt.Movement.Type).
		Int("cantidad", receipt.Movement.Quantity).
		Int("balance", receipt.NewBalance).
		Msg("movimiento registrado")

	return c.Status(fiber.StatusCreated).JSON(dto.MovementReceiptResponse{
		Code:       receipt.Movement.Code,
		Type:       receipt.Movement.Type,
		Quantity:   receipt.Movement.Quantity,
		NewBalance: receipt.NewBalance,
		Timestamp:  dto.FormatTimestamp(receipt.Timestamp),
	})
}

// ListMovements godoc
// @Summary      Consultar el log de movimientos
// @Tags         inventory
// @Produce      json
// @Param        code    query  string  false  "Filtrar por código de herramienta"
// @Param        limit   query  int     false  "Tamaño de página (solo sin code)"
// @Param        offset  query  int     false  "Desplazamiento (solo sin code)"
// @Success      200  {array}   dto.MovementDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	movements, err := h.uc.ListMovements(c.Context(), c.Query("code"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// ReconcileBalance godoc
// @Summary      Reconciliar balance desde el log
// @Description  Recalcula el balance como stock de alta + suma del log y
//
//	reescribe balance_actual. El log es la fuente de verdad.
//
// @Tags         inventory
// @Produce      json
// @Param        code  path  string  true  "Código de la herramienta"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile/{code} [post]
func (h *InventoryHandler) ReconcileBalance(c *fiber.Ctx) error {
	code := c.Params("code")
	balance, err := h.uc.ReconcileBalance(c.Context(), code)
	if err != nil {
		return respondError(c, err)
	}

	log.Info().Str("codigo", code).Int("balance", balance).Msg("balance reconciliado")
	return c.JSON(dto.ReconcileResponse{Code: code, Balance: balance})
}

// respondError mapea errores de dominio a códigos HTTP. Los cuatro errores del
// motor llegan al caller tal cual, con el mensaje específico de qué precondición
// falló.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrAmbiguousCode):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "AMBIGUOUS_CODE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORE_UNAVAILABLE", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
