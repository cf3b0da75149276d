package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nevera-api/internal/application/detection"
	"github.com/jhoicas/Nevera-api/internal/application/inventory"
	"github.com/jhoicas/Nevera-api/internal/application/recipes"
	"github.com/jhoicas/Nevera-api/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC *inventory.InventoryUseCase
	DetectionUC *detection.DetectionUseCase
	RecipeUC    *recipes.RecipeUseCase
	ReportUC    *report.ReportUseCase // nil = sin /inventory/report.pdf
	// JWTSecret vacío = API abierta.
	JWTSecret string
	// MetricsHandler nil = sin /metrics.
	MetricsHandler fiber.Handler
	ServiceName    string
}

// Router registra las rutas de la API. /health y /metrics son siempre públicas.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", deps.MetricsHandler)
	}

	var guard []fiber.Handler
	if deps.JWTSecret != "" {
		guard = append(guard, AuthMiddleware(deps.JWTSecret))
	}
	protected := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	// Detección
	detectionHandler := NewDetectionHandler(deps.DetectionUC)
	app.Post("/detect", protected(detectionHandler.Detect)...)
	app.Post("/detect_and_recipes", protected(detectionHandler.DetectAndRecipes)...)

	// Recetas
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	app.Post("/recipes", protected(recipeHandler.Search)...)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ReportUC)
	app.Get("/inventory", protected(inventoryHandler.List)...)
	if deps.ReportUC != nil {
		app.Get("/inventory/report.pdf", protected(inventoryHandler.ReportPDF)...)
	}
	app.Post("/update", protected(inventoryHandler.Update)...)
	app.Get("/expired", protected(inventoryHandler.Expired)...)
	app.Get("/shelf-life/:item", protected(inventoryHandler.ShelfLife)...)
}
