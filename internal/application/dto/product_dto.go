package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
)

// CreateProductRequest alta de producto en el catálogo (solo dueño).
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Barcode       string          `json:"barcode"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	ImageURL      string          `json:"imageUrl"`
	QuickSelect   bool            `json:"isQuickSelect"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
}

// UpdateProductRequest actualización parcial de producto (solo dueño).
// El stock no se toca por aquí: lo mueve el conciliador con cada registro.
type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Barcode       *string          `json:"barcode"`
	Price         *decimal.Decimal `json:"price"`
	CostPrice     *decimal.Decimal `json:"costPrice"`
	ImageURL      *string          `json:"imageUrl"`
	QuickSelect   *bool            `json:"isQuickSelect"`
	MinStockLevel *int             `json:"minStockLevel"`
}

// ProductResponse producto del catálogo expuesto por la API.
type ProductResponse struct {
	ID            string          `json:"id"`
	Barcode       string          `json:"barcode"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	QuickSelect   bool            `json:"isQuickSelect"`
	StockQuantity int             `json:"stockQuantity"`
	MinStockLevel int             `json:"minStockLevel"`
	LowStock      bool            `json:"lowStock"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToProductResponse convierte la entidad al DTO de salida.
func ToProductResponse(p entity.Product) ProductResponse {
	return ProductResponse{
		ID: p.ID, Barcode: p.Barcode, Name: p.Name,
		Price: p.Price, CostPrice: p.CostPrice, ImageURL: p.ImageURL,
		QuickSelect: p.QuickSelect, StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel, LowStock: p.LowStock(),
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}
