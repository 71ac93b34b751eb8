package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
)

// CatalogHandler maneja las consultas y altas del catálogo de herramientas.
type CatalogHandler struct {
	uc *catalog.ResolveUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.ResolveUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// GetByCode godoc
// @Summary      Consulta rápida de una herramienta por código
// @Tags         catalog
// @Produce      json
// @Param        code  path  string  true  "Código de la herramienta"
// @Success      200  {object}  dto.CatalogItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog/{code} [get]
func (h *CatalogHandler) GetByCode(c *fiber.Ctx) error {
	item, err := h.uc.Resolve(c.Context(), c.Params("code"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromCatalogItem(item))
}

// List godoc
// @Summary      Inventario actual completo
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   dto.CatalogItemDTO
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CatalogItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.FromCatalogItem(item))
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Create godoc
// @Summary      Dar de alta una herramienta
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCatalogItemRequest  true  "code, description, status, location, baseline_stock"
// @Success      201  {object}  dto.CatalogItemDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/catalog [post]
func (h *CatalogHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.Create(c.Context(), catalog.CreateItemInput{
		Code:          in.Code,
		Description:   in.Description,
		Status:        in.Status,
		Location:      in.Location,
		BaselineStock: in.BaselineStock,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromCatalogItem(item))
}
