package recipes

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain"
	"github.com/jhoicas/Nevera-api/internal/domain/ingredient"
)

// DefaultTopK cantidad de recetas cuando el cliente no la indica.
const DefaultTopK = 5

// RecipeUseCase busca recetas a partir de una lista de ingredientes.
// Cada llamada a la API externa lleva su propio timeout para no bloquear al handler.
type RecipeUseCase struct {
	searcher ports.RecipeSearcher
	timeout  time.Duration
	metrics  ports.Metrics
}

// NewRecipeUseCase construye el caso de uso. timeout <= 0 = sin límite propio.
func NewRecipeUseCase(searcher ports.RecipeSearcher, timeout time.Duration, metrics ports.Metrics) *RecipeUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RecipeUseCase{searcher: searcher, timeout: timeout, metrics: metrics}
}

// Search normaliza los ingredientes y consulta la API de recetas.
// Sin ingredientes válidos devuelve domain.ErrNoIngredients sin llamar al servicio.
func (uc *RecipeUseCase) Search(ctx context.Context, ingredients []string, vegetarian bool, topK int) (*dto.RecipeSearchResponse, error) {
	used := ingredient.Normalize(ingredients)
	if len(used) == 0 {
		return nil, domain.ErrNoIngredients
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	start := time.Now()
	recs, err := uc.searcher.SearchRecipes(ctx, ports.RecipeQuery{
		Ingredients:    used,
		VegetarianOnly: vegetarian,
		TopK:           topK,
	})
	uc.metrics.RecipeSearch(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("buscar recetas: %w", err)
	}
	if recs == nil {
		recs = []dto.RecipeSummary{}
	}
	return &dto.RecipeSearchResponse{IngredientsUsed: used, Recipes: recs}, nil
}
