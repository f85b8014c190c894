package dto

import "github.com/shopspring/decimal"

// ReceiptDraft resultado best-effort del lector de recibos (puerto de IA).
// Los campos llegan tal cual del modelo; el caso de uso los sanea.
type ReceiptDraft struct {
	Category   string         `json:"category"`
	Items      []LineItemDTO  `json:"items"`
	IceMetrics *IceMetricsDTO `json:"iceMetrics,omitempty"`
	Notes      string         `json:"notes,omitempty"`
}

// StartManualSessionRequest abre un borrador vacío sin pasar por la IA.
type StartManualSessionRequest struct {
	Category string `json:"category"`
}

// ScanReceiptRequest foto del recibo en base64 (JPEG).
type ScanReceiptRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// EditSessionRequest edición del borrador pendiente. Todos los campos son
// opcionales; los presentes reemplazan el valor actual del borrador.
type EditSessionRequest struct {
	Category   *string        `json:"category"`
	Items      *[]LineItemDTO `json:"items"`
	IceMetrics *IceMetricsDTO `json:"iceMetrics"`
	Notes      *string        `json:"notes"`
}

// SessionView estado del borrador en revisión.
type SessionView struct {
	State      string          `json:"state"` // EMPTY | DRAFT_PENDING
	Category   string          `json:"category,omitempty"`
	Items      []LineItemDTO   `json:"items,omitempty"`
	IceMetrics *IceMetricsDTO  `json:"iceMetrics,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Total      decimal.Decimal `json:"total"` // suma en vivo de las líneas
}
