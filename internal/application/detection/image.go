package detection

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // registra el decodificador gif
	"image/jpeg"
	_ "image/png" // registra el decodificador png

	_ "golang.org/x/image/bmp"  // registra el decodificador bmp
	_ "golang.org/x/image/webp" // registra el decodificador webp

	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain"
)

// MaxImageBytes tamaño máximo aceptado para una foto.
const MaxImageBytes = 10 << 20

// MaxImagePixels ancho*alto máximo. Se valida con la cabecera antes de decodificar:
// un png pequeño puede declarar un bitmap de gigabytes.
const MaxImagePixels = 40_000_000

const jpegQuality = 90

// DecodeImage valida que data sea una imagen decodificable y la prepara para el detector.
// jpeg y png pasan tal cual; gif, webp y bmp se re-codifican a jpeg.
func DecodeImage(data []byte) (ports.Image, error) {
	if len(data) == 0 {
		return ports.Image{}, fmt.Errorf("%w: imagen vacía", domain.ErrInvalidInput)
	}
	if len(data) > MaxImageBytes {
		return ports.Image{}, fmt.Errorf("%w: imagen supera %d bytes", domain.ErrInvalidInput, MaxImageBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ports.Image{}, fmt.Errorf("%w: Invalid image file", domain.ErrInvalidInput)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return ports.Image{}, fmt.Errorf("%w: imagen de %dx%d supera %d píxeles", domain.ErrInvalidInput, cfg.Width, cfg.Height, MaxImagePixels)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return ports.Image{}, fmt.Errorf("%w: Invalid image file", domain.ErrInvalidInput)
	}
	b := img.Bounds()
	out := ports.Image{Bytes: data, Format: format, Width: b.Dx(), Height: b.Dy()}

	switch format {
	case "jpeg", "png":
		return out, nil
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return ports.Image{}, fmt.Errorf("re-codificar %s a jpeg: %w", format, err)
	}
	out.Bytes = buf.Bytes()
	out.Format = "jpeg"
	return out, nil
}
