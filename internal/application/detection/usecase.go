package detection

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Nevera-api/internal/application/dto"
	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain/entity"
	"github.com/jhoicas/Nevera-api/internal/domain/ingredient"
)

// ItemStore lo que la detección necesita del inventario.
type ItemStore interface {
	AddOrUpdate(ctx context.Context, item string, quantity int, expiry *time.Time) (*entity.InventoryRecord, error)
}

// RecipeFinder lo que la detección necesita de la búsqueda de recetas.
type RecipeFinder interface {
	Search(ctx context.Context, ingredients []string, vegetarian bool, topK int) (*dto.RecipeSearchResponse, error)
}

// DetectionUseCase orquesta foto -> etiquetas -> inventario (-> recetas).
type DetectionUseCase struct {
	detector  ports.Detector
	inventory ItemStore
	recipes   RecipeFinder
	timeout   time.Duration
	metrics   ports.Metrics
}

// NewDetectionUseCase construye el caso de uso. timeout <= 0 = sin límite propio.
func NewDetectionUseCase(
	detector ports.Detector,
	inventory ItemStore,
	recipes RecipeFinder,
	timeout time.Duration,
	metrics ports.Metrics,
) *DetectionUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &DetectionUseCase{
		detector:  detector,
		inventory: inventory,
		recipes:   recipes,
		timeout:   timeout,
		metrics:   metrics,
	}
}

// DetectAndStore detecta los alimentos de la foto, los normaliza y suma una unidad
// de cada uno al inventario. Devuelve las etiquetas normalizadas.
// Cada upsert es independiente: el primero que falla corta el ciclo y los anteriores quedan guardados.
func (uc *DetectionUseCase) DetectAndStore(ctx context.Context, data []byte) ([]string, error) {
	labels, err := uc.detect(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := uc.store(ctx, labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// DetectAndRecipes como DetectAndStore y luego busca recetas con lo detectado.
// Si no se detecta nada devuelve listas vacías sin consultar la API de recetas.
func (uc *DetectionUseCase) DetectAndRecipes(ctx context.Context, data []byte, vegetarian bool, topK int) (*dto.DetectAndRecipesResponse, error) {
	labels, err := uc.detect(ctx, data)
	if err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return &dto.DetectAndRecipesResponse{DetectedItems: []string{}, Recipes: []dto.RecipeSummary{}}, nil
	}
	if err := uc.store(ctx, labels); err != nil {
		return nil, err
	}

	res, err := uc.recipes.Search(ctx, labels, vegetarian, topK)
	if err != nil {
		return nil, err
	}
	return &dto.DetectAndRecipesResponse{DetectedItems: labels, Recipes: res.Recipes}, nil
}

func (uc *DetectionUseCase) detect(ctx context.Context, data []byte) ([]string, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	dctx := ctx
	if uc.timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}
	raw, err := uc.detector.Detect(dctx, img)
	if err != nil {
		return nil, fmt.Errorf("detectar alimentos: %w", err)
	}
	labels := ingredient.Normalize(raw)
	uc.metrics.LabelsDetected(len(labels))
	return labels, nil
}

func (uc *DetectionUseCase) store(ctx context.Context, labels []string) error {
	for _, item := range labels {
		if _, err := uc.inventory.AddOrUpdate(ctx, item, 1, nil); err != nil {
			return err
		}
	}
	return nil
}
