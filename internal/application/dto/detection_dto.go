package dto

// DetectResponse respuesta de POST /detect.
type DetectResponse struct {
	DetectedItems []string `json:"detected_items"`
}

// DetectAndRecipesResponse respuesta de POST /detect_and_recipes.
type DetectAndRecipesResponse struct {
	DetectedItems []string        `json:"detected_items"`
	Recipes       []RecipeSummary `json:"recipes"`
}
