package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un producto vendible del catálogo del punto de venta.
// StockQuantity nunca baja de cero: una venta por encima del stock se permite
// pero la cantidad se recorta a cero (ver stock.ApplySale).
type Product struct {
	ID            string          `json:"id"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`     // precio de venta
	CostPrice     decimal.Decimal `json:"costPrice"` // costo de compra
	ImageURL      string          `json:"imageUrl,omitempty"`
	QuickSelect   bool            `json:"isQuickSelect"` // acceso rápido en el punto de venta
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
func (p Product) LowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
