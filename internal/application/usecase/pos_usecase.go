package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/ports"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/catalog"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
	"github.com/tu-usuario/abuela-pos/internal/domain/stock"
)

// POSUseCase carrito del punto de venta: escaneo de productos con IA,
// armado del carrito por identidad y cierre de la venta como un registro
// SALE del libro con conciliación de stock.
type POSUseCase struct {
	mu         sync.Mutex
	recognizer ports.ProductRecognizer
	records    repository.RecordRepository
	products   repository.ProductRepository
	config     repository.ConfigRepository
	credits    *CreditsUseCase

	cart []stock.CartLine
}

// NewPOSUseCase construye el caso de uso.
func NewPOSUseCase(
	recognizer ports.ProductRecognizer,
	records repository.RecordRepository,
	products repository.ProductRepository,
	config repository.ConfigRepository,
	credits *CreditsUseCase,
) *POSUseCase {
	return &POSUseCase{
		recognizer: recognizer,
		records:    records,
		products:   products,
		config:     config,
		credits:    credits,
	}
}

// Scan reconoce el producto de la foto y lo resuelve contra el catálogo con
// el matcher difuso. Si ningún producto empareja, la respuesta lleva la señal
// de producto no registrado con el texto crudo (para prellenar el alta).
// Consume un crédito y reintenta la llamada una sola vez.
func (uc *POSUseCase) Scan(ctx context.Context, in dto.ScanProductRequest) (*dto.ScanProductResponse, error) {
	if strings.TrimSpace(in.ImageBase64) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.credits.Consume(); err != nil {
		return nil, err
	}

	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	knownNames := make([]string, 0, len(products))
	for _, p := range products {
		knownNames = append(knownNames, p.Name)
	}

	callCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()

	name, err := uc.recognizer.RecognizeProduct(callCtx, in.ImageBase64, knownNames)
	if err != nil && !errors.Is(err, domain.ErrAIQuotaExceeded) {
		name, err = uc.recognizer.RecognizeProduct(callCtx, in.ImageBase64, knownNames)
	}
	if err != nil {
		return nil, err
	}

	matched := catalog.Match(name, products)
	if matched == nil {
		return &dto.ScanProductResponse{Unregistered: true, RawName: name}, nil
	}
	view := dto.ToProductResponse(*matched)
	return &dto.ScanProductResponse{Product: &view}, nil
}

// AddItem agrega un producto al carrito por identidad. Cantidades no
// positivas se tratan como 1; si el producto ya está, se acumula.
func (uc *POSUseCase) AddItem(in dto.AddCartItemRequest) (*dto.CartView, error) {
	p, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}

	uc.mu.Lock()
	merged := false
	for i := range uc.cart {
		if uc.cart[i].ProductID == in.ProductID {
			uc.cart[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		uc.cart = append(uc.cart, stock.CartLine{ProductID: in.ProductID, Quantity: qty})
	}
	uc.mu.Unlock()
	return uc.Cart()
}

// RemoveItem quita la línea del producto indicado.
func (uc *POSUseCase) RemoveItem(productID string) (*dto.CartView, error) {
	uc.mu.Lock()
	kept := uc.cart[:0]
	for _, line := range uc.cart {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	uc.cart = kept
	uc.mu.Unlock()
	return uc.Cart()
}

// Cart devuelve el carrito con precios resueltos del catálogo al momento.
func (uc *POSUseCase) Cart() (*dto.CartView, error) {
	uc.mu.Lock()
	lines := make([]stock.CartLine, len(uc.cart))
	copy(lines, uc.cart)
	uc.mu.Unlock()
	return uc.buildView(lines)
}

// Discard vacía el carrito sin tocar el libro ni el stock.
func (uc *POSUseCase) Discard() {
	uc.mu.Lock()
	uc.cart = nil
	uc.mu.Unlock()
}

// Checkout cierra la venta: arma las líneas con los precios del catálogo,
// agrega un registro SALE al libro, descuenta el stock vendido (recortado a
// cero) y vacía el carrito. El vuelto es informativo; un pago corto no
// bloquea la venta.
func (uc *POSUseCase) Checkout(in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if len(uc.cart) == 0 {
		return nil, domain.ErrEmptyCart
	}

	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]entity.LineItem, 0, len(uc.cart))
	for _, line := range uc.cart {
		p, ok := byID[line.ProductID]
		if !ok {
			// Producto borrado con el carrito abierto: la línea se omite.
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, entity.LineItem{
			Name: p.Name, Quantity: line.Quantity,
			UnitPrice: p.Price, TotalPrice: lineTotal,
		})
	}

	cfg, err := uc.config.GetConfig()
	if err != nil {
		return nil, err
	}

	rec := &entity.Record{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Type:      entity.RecordTypeSale,
		Category:  entity.CategorySale, // las ventas siempre usan la categoría SALE
		Items:     items,
		TotalCost: entity.SumItems(items),
		Synced:    cfg.SyncEnabled,
	}
	if err := uc.records.Append(rec); err != nil {
		return nil, err
	}

	products = stock.ApplySale(products, uc.cart)
	if err := uc.products.ReplaceAll(products); err != nil {
		return nil, err
	}

	change := decimal.Zero
	if in.CashReceived.IsPositive() {
		change = in.CashReceived.Sub(rec.TotalCost)
	}
	uc.cart = nil
	return &dto.CheckoutResponse{Record: dto.ToRecordResponse(*rec), Change: change}, nil
}

func (uc *POSUseCase) buildView(lines []stock.CartLine) (*dto.CartView, error) {
	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	view := &dto.CartView{Lines: []dto.CartLineView{}, Total: decimal.Zero}
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		view.Lines = append(view.Lines, dto.CartLineView{
			ProductID: p.ID, Name: p.Name, Quantity: line.Quantity,
			UnitPrice: p.Price, LineTotal: lineTotal,
		})
		view.Total = view.Total.Add(lineTotal)
	}
	return view, nil
}
