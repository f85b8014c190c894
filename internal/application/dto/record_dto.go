package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
)

// LineItemDTO línea de un borrador o registro.
type LineItemDTO struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// IceMetricsDTO contadores de hielo.
type IceMetricsDTO struct {
	Delivered int `json:"delivered"`
	Returned  int `json:"returned"`
}

// RecordResponse registro del libro tal como se expone por la API.
type RecordResponse struct {
	ID         string          `json:"id"`
	Timestamp  time.Time       `json:"timestamp"`
	Type       string          `json:"type"`
	Category   string          `json:"category"`
	Items      []LineItemDTO   `json:"items"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	IceMetrics *IceMetricsDTO  `json:"iceMetrics,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Synced     bool            `json:"isSynced"`
}

// ToRecordResponse convierte la entidad al DTO de salida.
func ToRecordResponse(r entity.Record) RecordResponse {
	items := make([]LineItemDTO, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, LineItemDTO{
			Name: it.Name, Quantity: it.Quantity,
			UnitPrice: it.UnitPrice, TotalPrice: it.TotalPrice,
		})
	}
	resp := RecordResponse{
		ID: r.ID, Timestamp: r.Timestamp, Type: r.Type, Category: r.Category,
		Items: items, TotalCost: r.TotalCost, Notes: r.Notes, Synced: r.Synced,
	}
	if r.IceMetrics != nil {
		resp.IceMetrics = &IceMetricsDTO{Delivered: r.IceMetrics.Delivered, Returned: r.IceMetrics.Returned}
	}
	return resp
}
