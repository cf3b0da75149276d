package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain"
)

var _ ports.Detector = (*HTTPDetector)(nil)

// HTTPDetector envía la imagen a un servicio de inferencia (p. ej. un sidecar YOLO)
// que responde {"labels": ["milk", "egg", ...]}.
type HTTPDetector struct {
	url        string
	httpClient *http.Client
}

// NewHTTPDetector construye el adaptador.
func NewHTTPDetector(url string, timeout time.Duration) *HTTPDetector {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPDetector{url: url, httpClient: &http.Client{Timeout: timeout}}
}

type labelsResponse struct {
	Labels []string `json:"labels"`
	Error  string   `json:"error"`
}

// Detect hace POST de los bytes de la imagen con su content-type.
func (d *HTTPDetector) Detect(ctx context.Context, img ports.Image) ([]string, error) {
	if d.url == "" {
		return nil, &domain.DetectionError{Provider: "http", Message: "DETECTOR_URL no configurado"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(img.Bytes))
	if err != nil {
		return nil, &domain.DetectionError{Provider: "http", Message: "crear HTTP request", Err: err}
	}
	req.Header.Set("Content-Type", "image/"+img.Format)
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.DetectionError{Provider: "http", Message: "timeout o cancelación", Err: ctx.Err()}
		}
		return nil, &domain.DetectionError{Provider: "http", Message: "llamada HTTP fallida", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, &domain.DetectionError{Provider: "http", Message: "leer respuesta", Err: err}
	}

	var body labelsResponse
	jsonErr := json.Unmarshal(raw, &body)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(raw))
		if jsonErr == nil && body.Error != "" {
			msg = body.Error
		}
		return nil, &domain.DetectionError{Provider: "http", Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, msg)}
	}
	if jsonErr != nil {
		return nil, &domain.DetectionError{Provider: "http", Message: "deserializar respuesta", Err: jsonErr}
	}
	return unique(body.Labels), nil
}
