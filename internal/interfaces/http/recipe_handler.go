package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/recipes"
)

// RecipeHandler busca recetas a partir de ingredientes.
type RecipeHandler struct {
	uc *recipes.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *recipes.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

// Search godoc
// @Summary      Recetas con los ingredientes indicados
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecipeSearchRequest  true  "ingredients, vegetarian, top_k"
// @Success      200   {object}  dto.RecipeSearchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /recipes [post]
func (h *RecipeHandler) Search(c *fiber.Ctx) error {
	in := dto.RecipeSearchRequest{TopK: recipes.DefaultTopK}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.Search(c.UserContext(), in.Ingredients, in.Vegetarian, in.TopK)
	if err != nil {
		return writeError(c, err, "VALIDATION")
	}
	return c.JSON(res)
}
