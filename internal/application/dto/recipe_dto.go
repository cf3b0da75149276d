package dto

// RecipeSearchRequest body para POST /recipes.
type RecipeSearchRequest struct {
	Ingredients []string `json:"ingredients"`
	Vegetarian  bool     `json:"vegetarian"`
	TopK        int      `json:"top_k"` // 0 = 5
}

// RecipeSummary proyección de una receta de Spoonacular.
type RecipeSummary struct {
	ID                    int    `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	ReadyInMinutes        int    `json:"readyInMinutes"`
	Servings              int    `json:"servings"`
	SourceURL             string `json:"sourceUrl"`
	Vegetarian            bool   `json:"vegetarian"`
	UsedIngredientCount   int    `json:"usedIngredientCount"`
	MissedIngredientCount int    `json:"missedIngredientCount"`
}

// RecipeSearchResponse respuesta de POST /recipes.
type RecipeSearchResponse struct {
	IngredientsUsed []string        `json:"ingredients_used"`
	Recipes         []RecipeSummary `json:"recipes"`
}
