package http

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/inventory"
	"github.com/jhoicas/Nevera-api/internal/application/report"
	"github.com/jhoicas/Nevera-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del inventario de la nevera.
type InventoryHandler struct {
	uc     *inventory.InventoryUseCase
	report *report.ReportUseCase
}

// NewInventoryHandler construye el handler. report puede ser nil (sin PDF).
func NewInventoryHandler(uc *inventory.InventoryUseCase, report *report.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, report: report}
}

// List godoc
// @Summary      Inventario completo
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return writeError(c, err, "VALIDATION")
	}
	return c.JSON(dto.InventoryListResponse{Items: inventory.ToItemDTOs(list)})
}

// Update godoc
// @Summary      Alta o actualización manual de un alimento
// @Description  Suma quantity (por defecto 1) al alimento. Sin expiry se usa la vida útil típica.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateItemRequest  true  "item, quantity, expiry (YYYY-MM-DD)"
// @Success      200   {object}  dto.UpdateItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /update [post]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.AddOrUpdateFromRequest(c.UserContext(), in)
	if err != nil {
		return writeError(c, err, "VALIDATION")
	}
	return c.JSON(dto.UpdateItemResponse{Message: "Item added/updated", Item: *item})
}

// Expired godoc
// @Summary      Alimentos vencidos
// @Tags         inventory
// @Produce      json
// @Param        as_of  query  string  false  "Fecha de corte YYYY-MM-DD (por defecto hoy)"
// @Success      200  {object}  dto.ExpiredListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /expired [get]
func (h *InventoryHandler) Expired(c *fiber.Ctx) error {
	asOf, ok := parseAsOf(c)
	if !ok {
		return invalidAsOf(c)
	}
	list, day, err := h.uc.ListExpired(c.UserContext(), asOf)
	if err != nil {
		return writeError(c, err, "VALIDATION")
	}
	return c.JSON(dto.ExpiredListResponse{
		AsOf:         entity.FormatDate(day),
		ExpiredItems: inventory.ToItemDTOs(list),
	})
}

// ShelfLife vida útil por defecto de un alimento.
// GET /shelf-life/:item
// Fiber deja el parámetro escapado: "green%20apple" debe llegar como "green apple".
func (h *InventoryHandler) ShelfLife(c *fiber.Ctx) error {
	item, err := url.PathUnescape(c.Params("item"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item mal codificado"})
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item requerido"})
	}
	return c.JSON(dto.ShelfLifeResponse{Item: item, Days: h.uc.DefaultExpiryDays(item)})
}

// ReportPDF descarga el inventario en PDF.
// GET /inventory/report.pdf
func (h *InventoryHandler) ReportPDF(c *fiber.Ctx) error {
	asOf, ok := parseAsOf(c)
	if !ok {
		return invalidAsOf(c)
	}
	pdf, filename, err := h.report.InventoryPDF(c.UserContext(), asOf)
	if err != nil {
		return writeError(c, err, "VALIDATION")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}

// parseAsOf lee ?as_of=YYYY-MM-DD; ok=false si viene con formato inválido.
func parseAsOf(c *fiber.Ctx) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query("as_of"))
	if raw == "" {
		return nil, true
	}
	t, err := entity.ParseDate(raw)
	if err != nil {
		return nil, false
	}
	return &t, true
}

func invalidAsOf(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe tener formato YYYY-MM-DD"})
}
