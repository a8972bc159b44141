package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tradeportal-api/internal/application/dto"
	"github.com/jhoicas/tradeportal-api/internal/application/stock"
	"github.com/jhoicas/tradeportal-api/internal/domain/entity"
	"github.com/jhoicas/tradeportal-api/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP del inventario de oficina (solo admin).
type StockHandler struct {
	uc *stock.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Create registra un ítem.
// POST /api/stock
func (h *StockHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	item, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List lista ítems con filtros opcionales.
// GET /api/stock?category=&location=&search=&low_stock=
func (h *StockHandler) List(c *fiber.Ctx) error {
	f := repository.StockFilters{
		Category: entity.StockCategory(c.Query("category")),
		Location: c.Query("location"),
		Search:   c.Query("search"),
		LowStock: c.QueryBool("low_stock"),
	}
	items, err := h.uc.List(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// LowStock devuelve los ítems en o por debajo del mínimo.
// GET /api/stock/low
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// Locations devuelve las ubicaciones registradas.
// GET /api/stock/locations
func (h *StockHandler) Locations(c *fiber.Ctx) error {
	locations, err := h.uc.Locations(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(locations)
}

// GetByID obtiene un ítem.
// GET /api/stock/:id
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	item, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Update patch parcial de los datos del ítem (no la cantidad).
// PUT /api/stock/:id
func (h *StockHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	var in dto.UpdateStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	item, err := h.uc.Update(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// SetQuantity sobreescritura absoluta de la cantidad.
// PUT /api/stock/:id/quantity
func (h *StockHandler) SetQuantity(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	var in dto.SetStockQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	item, err := h.uc.SetQuantity(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Adjust ajuste relativo con piso en cero.
// POST /api/stock/:id/adjust
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	item, err := h.uc.Adjust(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Delete borrado duro.
// DELETE /api/stock/:id
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "id requerido")
	}
	if err := h.uc.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
