// Package detector implementa el puerto Detector: AWS Rekognition o un servicio HTTP
// propio que sirve el modelo de detección.
package detector

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain"
)

var _ ports.Detector = (*RekognitionDetector)(nil)

const foodCategory = "Food and Beverage"

// DetectLabelsAPI lo único que se usa del cliente de Rekognition.
type DetectLabelsAPI interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionDetector detecta alimentos con DetectLabels.
type RekognitionDetector struct {
	client        DetectLabelsAPI
	maxLabels     int32
	minConfidence float32
}

// NewRekognitionClient carga la configuración AWS por defecto (variables de entorno,
// perfil compartido o rol) para la región indicada.
func NewRekognitionClient(ctx context.Context, region string) (*rekognition.Client, error) {
	if region == "" {
		return nil, fmt.Errorf("AWS_REGION no configurado")
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}
	return rekognition.NewFromConfig(cfg), nil
}

// NewRekognitionDetector construye el adaptador.
func NewRekognitionDetector(client DetectLabelsAPI, maxLabels int, minConfidence float64) *RekognitionDetector {
	return &RekognitionDetector{
		client:        client,
		maxLabels:     int32(maxLabels),
		minConfidence: float32(minConfidence),
	}
}

// Detect devuelve los nombres de etiqueta únicos. Si Rekognition informa categorías,
// solo se conservan las de alimentos y bebidas.
func (d *RekognitionDetector) Detect(ctx context.Context, img ports.Image) ([]string, error) {
	out, err := d.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: img.Bytes},
		MaxLabels:     aws.Int32(d.maxLabels),
		MinConfidence: aws.Float32(d.minConfidence),
	})
	if err != nil {
		return nil, &domain.DetectionError{Provider: "rekognition", Message: "DetectLabels", Err: err}
	}

	names := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		if l.Name == nil || !isFood(l) {
			continue
		}
		names = append(names, *l.Name)
	}
	return unique(names), nil
}

func isFood(l types.Label) bool {
	if len(l.Categories) == 0 {
		return true
	}
	for _, c := range l.Categories {
		if aws.ToString(c.Name) == foodCategory {
			return true
		}
	}
	return false
}

// unique elimina duplicados exactos conservando el orden.
func unique(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
