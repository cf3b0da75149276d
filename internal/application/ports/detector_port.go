package ports

import "context"

// Image imagen ya validada y lista para el modelo.
// Format es el nombre devuelto por image.Decode ("jpeg", "png", ...).
type Image struct {
	Bytes  []byte
	Format string
	Width  int
	Height int
}

// Detector define el puerto de salida hacia el modelo de detección de alimentos.
// Devuelve etiquetas únicas, sin normalizar (mayúsculas y espacios tal como las da el modelo).
type Detector interface {
	Detect(ctx context.Context, img Image) ([]string, error)
}
