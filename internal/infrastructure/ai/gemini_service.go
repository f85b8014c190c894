// Package ai contiene los adaptadores de colaboradores IA (Google Gemini).
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/ports"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
)

// Verificar en tiempo de compilación que GeminiService implementa ambos puertos.
var (
	_ ports.ReceiptReader     = (*GeminiService)(nil)
	_ ports.ProductRecognizer = (*GeminiService)(nil)
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// receiptPrompt define el rol del modelo para la lectura de recibos.
	// response_mime_type=application/json obliga a Gemini a devolver JSON puro,
	// sin bloques de markdown que haya que limpiar.
	receiptPrompt = `Eres el asistente de inventario de una tienda de barrio tailandesa.
Analiza la foto de un recibo de proveedor y devuelve ÚNICAMENTE un objeto JSON (sin texto adicional) con esta estructura exacta:
{
  "category": "<ICE | BEVERAGE | OTHERS>",
  "items": [{"name": "<nombre del artículo>", "quantity": <entero>, "unitPrice": <número>, "totalPrice": <número>}],
  "iceMetrics": {"delivered": <entero>, "returned": <entero>},
  "notes": "<observaciones breves o cadena vacía>"
}

Reglas:
- category: ICE si el recibo es de hielo, BEVERAGE si es de bebidas, OTHERS en cualquier otro caso.
- items: una entrada por línea legible del recibo. Si un precio no se lee, usa 0.
- iceMetrics: solo si category es ICE; si no, omite el campo.
- No inventes artículos que no aparezcan en el recibo.`

	// recognizePrompt define el rol del modelo para identificar un producto en una foto.
	recognizePrompt = `Eres el asistente de caja de una tienda de barrio tailandesa.
Identifica el producto principal de la foto y devuelve ÚNICAMENTE un objeto JSON (sin texto adicional):
{"name": "<nombre del producto>"}

Reglas:
- Si el producto coincide con alguno de la lista de productos conocidos, devuelve exactamente ese nombre.
- Si no, devuelve el nombre comercial más probable (marca y presentación).
- Si la foto no muestra ningún producto reconocible, devuelve {"name": ""}.`
)

// GeminiService adaptador que implementa los puertos de IA llamando a la API
// REST de Google Gemini. Usa únicamente net/http para no añadir dependencias.
type GeminiService struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiService construye el adaptador. model suele ser "gemini-1.5-flash".
func NewGeminiService(apiKey, model string) *GeminiService {
	return &GeminiService{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 20 * time.Second, // timeout de red; el caller también pone WithTimeout
		},
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
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
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // imagen en base64
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"` // "application/json" → JSON puro garantizado
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

// ── Implementación de los puertos ─────────────────────────────────────────────

// ReadReceipt envía la foto del recibo y devuelve el borrador propuesto por el
// modelo. Una respuesta vacía o no parseable es ErrAIUnrecognized; el caso de
// uso decide si reintenta o cae a un borrador manual.
func (s *GeminiService) ReadReceipt(ctx context.Context, imageBase64 string) (*dto.ReceiptDraft, error) {
	raw, err := s.generate(ctx, receiptPrompt, "Lee este recibo de proveedor.", imageBase64)
	if err != nil {
		return nil, err
	}

	var draft dto.ReceiptDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("%w: respuesta del modelo no es JSON válido", domain.ErrAIUnrecognized)
	}
	if !entity.ValidCategory(draft.Category) {
		draft.Category = entity.CategoryOthers
	}
	return &draft, nil
}

// RecognizeProduct envía la foto del producto junto con los nombres del
// catálogo y devuelve el nombre identificado.
func (s *GeminiService) RecognizeProduct(ctx context.Context, imageBase64 string, knownNames []string) (string, error) {
	userText := "Identifica el producto de la foto."
	if len(knownNames) > 0 {
		userText = fmt.Sprintf("Productos conocidos:\n%s\n\nIdentifica el producto de la foto.",
			strings.Join(knownNames, "\n"))
	}

	raw, err := s.generate(ctx, recognizePrompt, userText, imageBase64)
	if err != nil {
		return "", err
	}

	var payload struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", fmt.Errorf("%w: respuesta del modelo no es JSON válido", domain.ErrAIUnrecognized)
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return "", domain.ErrAIUnrecognized
	}
	return name, nil
}

// generate hace la llamada a Gemini con prompt de sistema, texto de usuario e
// imagen adjunta, y devuelve el texto del primer candidato.
func (s *GeminiService) generate(ctx context.Context, system, userText, imageBase64 string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}
	if strings.TrimSpace(imageBase64) == "" {
		return "", fmt.Errorf("AI: %w", domain.ErrInvalidInput)
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: system}},
		},
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: userText},
					{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}},
				},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.2, // baja temperatura para respuestas más deterministas
			MaxOutputTokens:  1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(geminiBaseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return "", fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", domain.ErrAIQuotaExceeded
	}
	if resp.StatusCode != http.StatusOK {
		// Intentar extraer el mensaje de error de Gemini
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return "", fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return "", fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return "", fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", domain.ErrAIUnrecognized
	}
	return strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text), nil
}
