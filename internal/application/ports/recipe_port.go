package ports

import (
	"context"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
)

// RecipeQuery parámetros de búsqueda; Ingredients ya normalizados.
type RecipeQuery struct {
	Ingredients    []string
	VegetarianOnly bool
	TopK           int
}

// RecipeSearcher define el puerto de salida hacia la API de recetas.
// Los fallos de transporte o HTTP no exitoso se devuelven como *domain.RecipeServiceError.
type RecipeSearcher interface {
	SearchRecipes(ctx context.Context, q RecipeQuery) ([]dto.RecipeSummary, error)
}
