// Package stock aplica los registros confirmados del libro sobre las
// existencias del catálogo (servicio de dominio, sin I/O).
package stock

import (
	"github.com/tu-usuario/abuela-pos/internal/domain/catalog"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
)

// CartLine es una línea de carrito ya resuelta a identidad de producto.
type CartLine struct {
	ProductID string
	Quantity  int
}

// ApplyIntake suma al stock las cantidades de las líneas de una entrada de
// mercancía y devuelve el catálogo actualizado.
//
// El emparejamiento por defecto es literal (nombre normalizado idéntico):
// la entrada confía en los nombres que el usuario dejó tras revisar el borrador.
// Con IntakeMatchFuzzy se resuelve el nombre con el matcher del punto de venta.
// Las líneas sin producto se ignoran en silencio: son mercancía sin catalogar,
// no un error.
func ApplyIntake(products []entity.Product, items []entity.LineItem, policy string) []entity.Product {
	for _, it := range items {
		var matched *entity.Product
		if policy == entity.IntakeMatchFuzzy {
			matched = catalog.Match(it.Name, products)
		} else {
			matched = catalog.ExactName(it.Name, products)
		}
		if matched == nil || it.Quantity <= 0 {
			continue
		}
		for i := range products {
			if products[i].ID == matched.ID {
				products[i].StockQuantity += it.Quantity
				break
			}
		}
	}
	return products
}

// ApplySale resta del stock las cantidades vendidas, emparejando por identidad
// de producto (el carrito ya lleva referencias resueltas, no nombres).
// Vender más de lo que hay en stock está permitido y no bloquea la venta, pero
// el stock nunca queda negativo: se recorta a cero.
func ApplySale(products []entity.Product, lines []CartLine) []entity.Product {
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		for i := range products {
			if products[i].ID != line.ProductID {
				continue
			}
			products[i].StockQuantity -= line.Quantity
			if products[i].StockQuantity < 0 {
				products[i].StockQuantity = 0
			}
			break
		}
	}
	return products
}
