package entity

// Categorías de registro. SALE es exclusiva de los registros de venta;
// las demás clasifican las compras de mercancía.
const (
	CategoryIce      = "ICE"
	CategoryBeverage = "BEVERAGE"
	CategoryOthers   = "OTHERS"
	CategorySale     = "SALE"
)

// Categories lista las categorías válidas en orden estable (útil para desgloses).
var Categories = []string{CategoryIce, CategoryBeverage, CategoryOthers, CategorySale}

// Tipos de registro en el libro.
const (
	RecordTypeInvestment = "INVESTMENT" // entrada de mercancía (compra a proveedor)
	RecordTypeSale       = "SALE"       // venta en punto de venta
)

// ValidCategory indica si la categoría pertenece a la enumeración fija.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}
