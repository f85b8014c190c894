package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem es una línea de un registro: nombre, cantidad, precio unitario y total.
// TotalPrice NO tiene que ser Quantity*UnitPrice: el usuario corrige a mano la
// salida de la IA y el total editado es el que vale. Sí debe ser >= 0.
type LineItem struct {
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// IceMetrics contadores de kilos/bolsas de hielo de un registro de entrada.
type IceMetrics struct {
	Delivered int `json:"delivered"` // bolsas entregadas por el proveedor
	Returned  int `json:"returned"`  // bolsas devueltas
}

// Record es un registro del libro de transacciones: una entrada de mercancía
// (INVESTMENT) o una venta (SALE). Inmutable después de agregarse al libro;
// solo el dueño puede eliminarlo.
// TotalCost se recalcula al confirmar (suma de TotalPrice de las líneas),
// nunca se confía en el total que venga de la IA.
type Record struct {
	ID         string      `json:"id"`
	Timestamp  time.Time   `json:"timestamp"`
	Type       string      `json:"type"`     // INVESTMENT | SALE
	Category   string      `json:"category"` // ICE | BEVERAGE | OTHERS | SALE
	Items      []LineItem  `json:"items"`
	TotalCost  decimal.Decimal `json:"totalCost"`
	IceMetrics *IceMetrics `json:"iceMetrics,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Synced     bool        `json:"isSynced"` // true si la sincronización estaba activa al confirmar
}

// SumItems suma los totales de las líneas. Es la única fuente válida para TotalCost.
func SumItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.TotalPrice)
	}
	return total
}
