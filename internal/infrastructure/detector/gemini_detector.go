package detector

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/Nevera-api/internal/application/ports"
	"github.com/jhoicas/Nevera-api/internal/domain"
)

var _ ports.Detector = (*GeminiDetector)(nil)

const (
	// GeminiBaseURL raíz de la API REST de Google Gemini.
	GeminiBaseURL = "https://generativelanguage.googleapis.com"

	geminiPrompt = `You are looking at a photo of the inside of a fridge or a kitchen counter.
Return ONLY a JSON object with this exact shape:
{"labels": ["<food>", "<food>", ...]}

Rules:
- One entry per distinct food or drink you can see, in English, singular, lowercase (e.g. "milk", "egg", "tomato").
- Ignore containers, shelves, appliances and people.
- If there is no food, return {"labels": []}.`
)

// GeminiDetector usa un modelo multimodal de Gemini como detector de alimentos.
type GeminiDetector struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiDetector construye el adaptador. model suele ser "gemini-1.5-flash"; baseURL vacío = GeminiBaseURL.
func NewGeminiDetector(apiKey, model, baseURL string, timeout time.Duration) *GeminiDetector {
	if baseURL == "" {
		baseURL = GeminiBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiDetector{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Detect envía la imagen inline junto con el prompt y lee {"labels": [...]} de la respuesta.
func (d *GeminiDetector) Detect(ctx context.Context, img ports.Image) ([]string, error) {
	if d.apiKey == "" {
		return nil, &domain.DetectionError{Provider: "gemini", Message: "GEMINI_API_KEY no configurado"}
	}

	payload := geminiRequest{
		Contents: []geminiContent{{
			Role: "user",
			Parts: []geminiPart{
				{InlineData: &inlineData{MIMEType: "image/" + img.Format, Data: base64.StdEncoding.EncodeToString(img.Bytes)}},
				{Text: geminiPrompt},
			},
		}},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.1,
			MaxOutputTokens:  512,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &domain.DetectionError{Provider: "gemini", Message: "serializar request", Err: err}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", d.baseURL, d.model, d.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &domain.DetectionError{Provider: "gemini", Message: "crear HTTP request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &domain.DetectionError{Provider: "gemini", Message: "timeout o cancelación", Err: ctx.Err()}
		}
		// *url.Error incluye la URL con la key
		return nil, &domain.DetectionError{Provider: "gemini", Message: "llamada HTTP fallida"}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return nil, &domain.DetectionError{Provider: "gemini", Message: "leer respuesta", Err: err}
	}

	var gemResp geminiResponse
	jsonErr := json.Unmarshal(raw, &gemResp)
	if resp.StatusCode != http.StatusOK {
		if jsonErr == nil && gemResp.Error != nil {
			return nil, &domain.DetectionError{Provider: "gemini", Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, gemResp.Error.Message)}
		}
		return nil, &domain.DetectionError{Provider: "gemini", Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	if jsonErr != nil {
		return nil, &domain.DetectionError{Provider: "gemini", Message: "deserializar respuesta", Err: jsonErr}
	}
	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return []string{}, nil
	}

	text := strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text)
	var out labelsResponse
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return nil, &domain.DetectionError{Provider: "gemini", Message: fmt.Sprintf("respuesta del modelo no es JSON válido: %s", text), Err: err}
	}
	return unique(out.Labels), nil
}
