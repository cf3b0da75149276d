package http_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Nevera-api/internal/application/detection"
	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/inventory"
	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/application/recipes"
	"github.com/jhoicas/Nevera-api/internal/application/report"
	"github.com/jhoicas/Nevera-api/internal/domain"
	domaininv "github.com/jhoicas/Nevera-api/internal/domain/inventory"
	infrapdf "github.com/jhoicas/Nevera-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Nevera-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Nevera-api/internal/interfaces/http"
	"github.com/jhoicas/Nevera-api/pkg/logger"
)

type stubDetector struct{ labels []string }

func (d *stubDetector) Detect(context.Context, ports.Image) ([]string, error) { return d.labels, nil }

type stubSearcher struct {
	last ports.RecipeQuery
	err  error
}

func (s *stubSearcher) SearchRecipes(_ context.Context, q ports.RecipeQuery) ([]dto.RecipeSummary, error) {
	s.last = q
	if s.err != nil {
		return nil, s.err
	}
	return []dto.RecipeSummary{{ID: 1, Title: "Frittata", Vegetarian: true, UsedIngredientCount: len(q.Ingredients)}}, nil
}

type testEnv struct {
	app      *fiber.App
	db       *sql.DB
	detector *stubDetector
	searcher *stubSearcher
}

func newTestEnv(t *testing.T, jwtSecret string) *testEnv {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "fridge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clock := func() time.Time { return time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC) }
	repo := sqlite.NewInventoryRepository(db)
	det := &stubDetector{}
	srch := &stubSearcher{}

	invUC := inventory.NewInventoryUseCase(repo, domaininv.ExpiryRefresh, clock, nil)
	recipeUC := recipes.NewRecipeUseCase(srch, time.Second, nil)
	detUC := detection.NewDetectionUseCase(det, invUC, recipeUC, time.Second, nil)
	reportUC := report.NewReportUseCase(repo, infrapdf.NewMarotoReportGenerator("Nevera"), clock)

	app := fiber.New()
	app.Use(apphttp.RequestID())
	app.Use(apphttp.AccessLog(logger.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		InventoryUC: invUC,
		DetectionUC: detUC,
		RecipeUC:    recipeUC,
		ReportUC:    reportUC,
		JWTSecret:   jwtSecret,
		ServiceName: "nevera-test",
	})
	return &testEnv{app: app, db: db, detector: det, searcher: srch}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, body
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, path string, file []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if file != nil {
		part, err := w.CreateFormFile("file", "fridge.png")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(2, 2, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_VencimientoPorDefectoYSuma(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/update", `{"item": "milk"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	out := decode[dto.UpdateItemResponse](t, body)
	assert.Equal(t, "Item added/updated", out.Message)
	assert.Equal(t, "2024-01-08", out.Item.Expiry)
	assert.Equal(t, 1, out.Item.Quantity)

	resp, body = env.do(t, jsonRequest(http.MethodPost, "/update", `{"item": "milk", "quantity": 3, "expiry": "2024-01-05"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decode[dto.UpdateItemResponse](t, body)
	assert.Equal(t, 4, out.Item.Quantity)
	assert.Equal(t, "2024-01-05", out.Item.Expiry)

	resp, body = env.do(t, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.InventoryListResponse](t, body)
	require.Len(t, list.Items, 1)
	assert.Equal(t, dto.InventoryItemDTO{ID: out.Item.ID, Item: "milk", Quantity: 4, Expiry: "2024-01-05"}, list.Items[0])
}

func TestUpdate_Validaciones(t *testing.T) {
	env := newTestEnv(t, "")

	cases := map[string]struct {
		body string
		code string
	}{
		"item vacío":     {`{"item": ""}`, "VALIDATION"},
		"fecha inválida": {`{"item": "milk", "expiry": "05/01/2024"}`, "VALIDATION"},
		"json roto":      {`{"item": `, "INVALID_BODY"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp, body := env.do(t, jsonRequest(http.MethodPost, "/update", tc.body))
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tc.code, decode[dto.ErrorResponse](t, body).Code)
		})
	}
}

func TestInventario_VacioEsListaVacia(t *testing.T) {
	env := newTestEnv(t, "")

	_, body := env.do(t, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	assert.JSONEq(t, `{"items": []}`, string(body))

	_, body = env.do(t, httptest.NewRequest(http.MethodGet, "/expired", nil))
	assert.JSONEq(t, `{"as_of": "2024-01-01", "expired_items": []}`, string(body))
}

func TestExpired(t *testing.T) {
	env := newTestEnv(t, "")
	env.do(t, jsonRequest(http.MethodPost, "/update", `{"item": "milk"}`))   // 2024-01-08
	env.do(t, jsonRequest(http.MethodPost, "/update", `{"item": "butter"}`)) // 2024-03-31

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/expired?as_of=2024-01-08", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.ExpiredListResponse](t, body).ExpiredItems, "vence hoy no está vencido")

	_, body = env.do(t, httptest.NewRequest(http.MethodGet, "/expired?as_of=2024-01-09", nil))
	out := decode[dto.ExpiredListResponse](t, body)
	require.Len(t, out.ExpiredItems, 1)
	assert.Equal(t, "milk", out.ExpiredItems[0].Item)
	assert.Equal(t, "2024-01-09", out.AsOf)

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/expired?as_of=ayer", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestShelfLife(t *testing.T) {
	env := newTestEnv(t, "")

	_, body := env.do(t, httptest.NewRequest(http.MethodGet, "/shelf-life/Butter", nil))
	assert.Equal(t, dto.ShelfLifeResponse{Item: "Butter", Days: 90}, decode[dto.ShelfLifeResponse](t, body))

	_, body = env.do(t, httptest.NewRequest(http.MethodGet, "/shelf-life/dragonfruit-jam", nil))
	assert.Equal(t, domaininv.FallbackShelfLifeDays, decode[dto.ShelfLifeResponse](t, body).Days)
}

func TestShelfLife_NombresConEspacios(t *testing.T) {
	env := newTestEnv(t, "")

	cases := []struct {
		path string
		want dto.ShelfLifeResponse
	}{
		{"/shelf-life/green%20apple", dto.ShelfLifeResponse{Item: "green apple", Days: 30}},
		{"/shelf-life/Green%20Apple", dto.ShelfLifeResponse{Item: "Green Apple", Days: 30}},
		{"/shelf-life/jar%20of%20pickles", dto.ShelfLifeResponse{Item: "jar of pickles", Days: 90}},
		{"/shelf-life/cottage%20cheese", dto.ShelfLifeResponse{Item: "cottage cheese", Days: 10}},
	}
	for _, tc := range cases {
		resp, body := env.do(t, httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.Equal(t, http.StatusOK, resp.StatusCode, tc.path)
		assert.Equal(t, tc.want, decode[dto.ShelfLifeResponse](t, body), tc.path)
	}
}

func TestReportPDF(t *testing.T) {
	env := newTestEnv(t, "")
	env.do(t, jsonRequest(http.MethodPost, "/update", `{"item": "milk"}`))

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/inventory/report.pdf?as_of=2024-01-10", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario_2024-01-10.pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
}

func TestErrorDeAlmacenamiento_Retorna500(t *testing.T) {
	env := newTestEnv(t, "")
	require.NoError(t, env.db.Close())

	resp, body := env.do(t, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "STORAGE", decode[dto.ErrorResponse](t, body).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recetas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecipes(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/recipes", `{"ingredients": ["Tomatoes", "egg", "box"], "vegetarian": true, "top_k": 2}`))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	out := decode[dto.RecipeSearchResponse](t, body)
	assert.Equal(t, []string{"tomato", "egg"}, out.IngredientsUsed)
	require.Len(t, out.Recipes, 1)
	assert.Equal(t, ports.RecipeQuery{Ingredients: []string{"tomato", "egg"}, VegetarianOnly: true, TopK: 2}, env.searcher.last)
}

func TestRecipes_TopKPorDefecto(t *testing.T) {
	env := newTestEnv(t, "")

	resp, _ := env.do(t, jsonRequest(http.MethodPost, "/recipes", `{"ingredients": ["milk"]}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 5, env.searcher.last.TopK)
}

func TestRecipes_SinIngredientesValidos(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/recipes", `{"ingredients": ["bottle", "  "]}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.ErrorResponse{Code: "NO_INGREDIENTS", Message: "No valid ingredients"}, decode[dto.ErrorResponse](t, body))
}

func TestRecipes_ErrorDeLaAPI_Retorna502(t *testing.T) {
	env := newTestEnv(t, "")
	env.searcher.err = &domain.RecipeServiceError{StatusCode: 402, Message: "quota exceeded"}

	resp, body := env.do(t, jsonRequest(http.MethodPost, "/recipes", `{"ingredients": ["milk"]}`))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, dto.ErrorResponse{Code: "RECIPE_API", Message: "Recipe API error: quota exceeded"}, decode[dto.ErrorResponse](t, body))
}

// ──────────────────────────────────────────────────────────────────────────────
// Detección
// ──────────────────────────────────────────────────────────────────────────────

func TestDetect_GuardaEnInventario(t *testing.T) {
	env := newTestEnv(t, "")
	env.detector.labels = []string{"Milk", "bottle", "Tomatoes"}

	resp, body := env.do(t, uploadRequest(t, "/detect", samplePNG(t)))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, []string{"milk", "tomato"}, decode[dto.DetectResponse](t, body).DetectedItems)

	env.do(t, uploadRequest(t, "/detect", samplePNG(t)))

	_, body = env.do(t, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	items := decode[dto.InventoryListResponse](t, body).Items
	require.Len(t, items, 2)
	assert.Equal(t, "milk", items[0].Item)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "tomato", items[1].Item)
}

func TestDetect_ImagenInvalida(t *testing.T) {
	env := newTestEnv(t, "")

	resp, body := env.do(t, uploadRequest(t, "/detect", []byte("not an image")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, dto.ErrorResponse{Code: "INVALID_IMAGE", Message: "Invalid image file"}, decode[dto.ErrorResponse](t, body))

	resp, _ = env.do(t, uploadRequest(t, "/detect", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "sin campo file")
}

func TestDetectAndRecipes(t *testing.T) {
	env := newTestEnv(t, "")
	env.detector.labels = []string{"egg", "paneer"}

	resp, body := env.do(t, uploadRequest(t, "/detect_and_recipes?vegetarian=true&top_k=3", samplePNG(t)))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	out := decode[dto.DetectAndRecipesResponse](t, body)
	assert.Equal(t, []string{"egg", "cottage cheese"}, out.DetectedItems)
	assert.Len(t, out.Recipes, 1)
	assert.True(t, env.searcher.last.VegetarianOnly)
	assert.Equal(t, 3, env.searcher.last.TopK)
}

func TestDetectAndRecipes_NadaDetectado(t *testing.T) {
	env := newTestEnv(t, "")
	env.detector.labels = []string{"container"}

	resp, body := env.do(t, uploadRequest(t, "/detect_and_recipes", samplePNG(t)))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"detected_items": [], "recipes": []}`, string(body))
	assert.Empty(t, env.searcher.last.Ingredients, "no se consulta la API de recetas")
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth opcional
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ConJWT(t *testing.T) {
	env := newTestEnv(t, testJWTSecret)

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/inventory", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	req.Header.Set("Authorization", bearer(t))
	resp, _ = env.do(t, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode, "/health es pública")
}

func TestRequestID(t *testing.T) {
	env := newTestEnv(t, "")

	resp, _ := env.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Len(t, resp.Header.Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, _ = env.do(t, req)
	assert.Equal(t, "abc-123", resp.Header.Get("X-Request-ID"))
}
