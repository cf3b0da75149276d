// Package recipes implementa el puerto RecipeSearcher sobre la API de Spoonacular.
package recipes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain"
)

// Verificar en tiempo de compilación que SpoonacularClient implementa RecipeSearcher.
var _ ports.RecipeSearcher = (*SpoonacularClient)(nil)

const (
	DefaultBaseURL = "https://api.spoonacular.com"

	// Spoonacular acepta más, pero la búsqueda pierde precisión.
	maxIngredients = 10
	maxBodyBytes   = 1 << 20
)

// SpoonacularClient adaptador REST de complexSearch.
type SpoonacularClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewSpoonacularClient construye el adaptador. baseURL vacío = API pública.
func NewSpoonacularClient(apiKey, baseURL string, timeout time.Duration) *SpoonacularClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &SpoonacularClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

type complexSearchResponse struct {
	Results []struct {
		ID                    int    `json:"id"`
		Title                 string `json:"title"`
		Image                 string `json:"image"`
		ReadyInMinutes        int    `json:"readyInMinutes"`
		Servings              int    `json:"servings"`
		SourceURL             string `json:"sourceUrl"`
		Vegetarian            bool   `json:"vegetarian"`
		UsedIngredientCount   int    `json:"usedIngredientCount"`
		MissedIngredientCount int    `json:"missedIngredientCount"`
	} `json:"results"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// SearchRecipes consulta /recipes/complexSearch ordenando por ingredientes usados.
func (c *SpoonacularClient) SearchRecipes(ctx context.Context, q ports.RecipeQuery) ([]dto.RecipeSummary, error) {
	if c.apiKey == "" {
		return nil, &domain.RecipeServiceError{Message: "SPOONACULAR_API_KEY no configurado"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/recipes/complexSearch", nil)
	if err != nil {
		return nil, &domain.RecipeServiceError{Message: "crear HTTP request", Err: err}
	}
	req.URL.RawQuery = queryParams(q, c.apiKey).Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.RecipeServiceError{Message: "timeout o cancelación", Err: ctx.Err()}
		}
		return nil, &domain.RecipeServiceError{Message: "llamada HTTP fallida", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.RecipeServiceError{StatusCode: resp.StatusCode, Message: "leer respuesta", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		var errResp errorResponse
		if jsonErr := json.Unmarshal(raw, &errResp); jsonErr == nil && errResp.Message != "" {
			msg = errResp.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &domain.RecipeServiceError{StatusCode: resp.StatusCode, Message: msg}
	}

	var body complexSearchResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, &domain.RecipeServiceError{StatusCode: resp.StatusCode, Message: "deserializar respuesta", Err: err}
	}

	out := make([]dto.RecipeSummary, 0, len(body.Results))
	for _, r := range body.Results {
		out = append(out, dto.RecipeSummary{
			ID:                    r.ID,
			Title:                 r.Title,
			Image:                 r.Image,
			ReadyInMinutes:        r.ReadyInMinutes,
			Servings:              r.Servings,
			SourceURL:             r.SourceURL,
			Vegetarian:            r.Vegetarian,
			UsedIngredientCount:   r.UsedIngredientCount,
			MissedIngredientCount: r.MissedIngredientCount,
		})
	}
	return out, nil
}

func queryParams(q ports.RecipeQuery, apiKey string) url.Values {
	ings := q.Ingredients
	if len(ings) > maxIngredients {
		ings = ings[:maxIngredients]
	}
	v := url.Values{}
	v.Set("includeIngredients", strings.Join(ings, ","))
	v.Set("number", strconv.Itoa(q.TopK))
	v.Set("addRecipeInformation", "true")
	v.Set("instructionsRequired", "true")
	v.Set("sort", "max-used-ingredients")
	if q.VegetarianOnly {
		v.Set("diet", "vegetarian")
	}
	v.Set("apiKey", apiKey)
	return v
}

// String evita filtrar la API key en logs.
func (c *SpoonacularClient) String() string {
	return fmt.Sprintf("spoonacular(%s)", c.baseURL)
}
