package dto

import "github.com/shopspring/decimal"

// AddCartItemRequest agrega un producto (por identidad) al carrito.
type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CartLineView línea del carrito con el precio resuelto del catálogo.
type CartLineView struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartView carrito abierto del punto de venta.
type CartView struct {
	Lines []CartLineView  `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// ScanProductRequest foto del producto a reconocer (base64 JPEG).
type ScanProductRequest struct {
	ImageBase64 string `json:"imageBase64"`
}

// ScanProductResponse resultado del escaneo: un producto del catálogo o la
// señal de producto no registrado con el texto crudo reconocido.
type ScanProductResponse struct {
	Product      *ProductResponse `json:"product,omitempty"`
	Unregistered bool             `json:"unregistered"`
	RawName      string           `json:"rawName,omitempty"`
}

// CheckoutRequest cierre de venta. CashReceived es opcional (0 = sin registrar).
type CheckoutRequest struct {
	CashReceived decimal.Decimal `json:"cashReceived"`
}

// CheckoutResponse venta confirmada: registro creado y vuelto calculado.
type CheckoutResponse struct {
	Record RecordResponse  `json:"record"`
	Change decimal.Decimal `json:"change"`
}
