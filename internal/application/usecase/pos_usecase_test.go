package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
)

func newPOS(env *testEnv, recognizer *fakeRecognizer) *usecase.POSUseCase {
	return usecase.NewPOSUseCase(recognizer, env.records, env.products, env.config, env.credits)
}

// El nombre reconocido se resuelve contra el catálogo con el matcher difuso.
func TestPOS_ScanResuelveProducto(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Coca-Cola 1.25L", 25, 10)
	uc := newPOS(env, &fakeRecognizer{names: []string{"coca cola 1.25l"}})

	out, err := uc.Scan(context.Background(), dto.ScanProductRequest{ImageBase64: "img"})
	require.NoError(t, err)

	require.NotNil(t, out.Product)
	assert.Equal(t, "p1", out.Product.ID)
	assert.False(t, out.Unregistered)
	assert.Equal(t, 4, env.creditBalance(t))
}

// Producto no catalogado → señal de no registrado con el texto crudo.
func TestPOS_ScanNoRegistrado(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Hielo", 15, 5)
	uc := newPOS(env, &fakeRecognizer{names: []string{"chocolate importado xyz"}})

	out, err := uc.Scan(context.Background(), dto.ScanProductRequest{ImageBase64: "img"})
	require.NoError(t, err)

	assert.Nil(t, out.Product)
	assert.True(t, out.Unregistered)
	assert.Equal(t, "chocolate importado xyz", out.RawName, "el texto crudo prellena el alta")
}

// El reconocimiento se reintenta una vez y respeta la cuota.
func TestPOS_ScanReintentoYCuota(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Hielo", 15, 5)

	flaky := &fakeRecognizer{errs: []error{errors.New("flaky"), nil}, names: []string{"", "hielo"}}
	uc := newPOS(env, flaky)
	out, err := uc.Scan(context.Background(), dto.ScanProductRequest{ImageBase64: "img"})
	require.NoError(t, err)
	require.NotNil(t, out.Product)
	assert.Equal(t, 2, flaky.calls)

	quota := &fakeRecognizer{errs: []error{domain.ErrAIQuotaExceeded}}
	uc = newPOS(env, quota)
	_, err = uc.Scan(context.Background(), dto.ScanProductRequest{ImageBase64: "img"})
	assert.ErrorIs(t, err, domain.ErrAIQuotaExceeded)
	assert.Equal(t, 1, quota.calls, "la cuota agotada no se reintenta")
}

// El carrito acumula por identidad y trata cantidades no positivas como 1.
func TestPOS_CarritoAcumulaPorIdentidad(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Coca-Cola 1.25L", 25, 10)
	uc := newPOS(env, &fakeRecognizer{})

	_, err := uc.AddItem(dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	view, err := uc.AddItem(dto.AddCartItemRequest{ProductID: "p1", Quantity: 0})
	require.NoError(t, err)

	require.Len(t, view.Lines, 1, "mismo producto = una línea")
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.True(t, view.Total.Equal(decimal.NewFromInt(75)))

	_, err = uc.AddItem(dto.AddCartItemRequest{ProductID: "no-existe", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	view, err = uc.RemoveItem("p1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

// Cobrar con carrito vacío es un error; nada se registra.
func TestPOS_CheckoutCarritoVacio(t *testing.T) {
	env := newTestEnv(t, 5)
	uc := newPOS(env, &fakeRecognizer{})

	_, err := uc.Checkout(dto.CheckoutRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	ledger, err := env.records.ListAsc()
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

// Venta completa: registro SALE, stock descontado con recorte a cero y vuelto.
func TestPOS_CheckoutDescuentaStockYCalculaVuelto(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Coca-Cola 1.25L", 25, 10)
	env.seedProduct(t, "p2", "Hielo", 15, 2)
	uc := newPOS(env, &fakeRecognizer{})

	_, err := uc.AddItem(dto.AddCartItemRequest{ProductID: "p1", Quantity: 7})
	require.NoError(t, err)
	_, err = uc.AddItem(dto.AddCartItemRequest{ProductID: "p2", Quantity: 5}) // más que el stock
	require.NoError(t, err)

	out, err := uc.Checkout(dto.CheckoutRequest{CashReceived: decimal.NewFromInt(300)})
	require.NoError(t, err)

	assert.Equal(t, entity.RecordTypeSale, out.Record.Type)
	assert.Equal(t, entity.CategorySale, out.Record.Category)
	assert.True(t, out.Record.TotalCost.Equal(decimal.NewFromInt(250)), "7*25 + 5*15")
	assert.True(t, out.Change.Equal(decimal.NewFromInt(50)))

	assert.Equal(t, 3, env.stockOf(t, "p1"))
	assert.Equal(t, 0, env.stockOf(t, "p2"), "sobrevender recorta a cero")

	cart, err := uc.Cart()
	require.NoError(t, err)
	assert.Empty(t, cart.Lines, "el cobro vacía el carrito")
}

// Sin efectivo registrado el vuelto queda en cero, y un producto borrado con
// el carrito abierto no entra en la venta.
func TestPOS_CheckoutSinEfectivoYProductoBorrado(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Coca-Cola 1.25L", 25, 10)
	env.seedProduct(t, "p2", "Hielo", 15, 5)
	uc := newPOS(env, &fakeRecognizer{})

	_, err := uc.AddItem(dto.AddCartItemRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)
	_, err = uc.AddItem(dto.AddCartItemRequest{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, env.products.Delete("p2"))

	out, err := uc.Checkout(dto.CheckoutRequest{})
	require.NoError(t, err)

	require.Len(t, out.Record.Items, 1, "la línea del producto borrado se omite")
	assert.True(t, out.Record.TotalCost.Equal(decimal.NewFromInt(50)))
	assert.True(t, out.Change.Equal(decimal.Zero))
}

// Descartar el carrito no toca libro ni stock.
func TestPOS_DescartarCarrito(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Hielo", 15, 5)
	uc := newPOS(env, &fakeRecognizer{})

	_, err := uc.AddItem(dto.AddCartItemRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	uc.Discard()

	cart, err := uc.Cart()
	require.NoError(t, err)
	assert.Empty(t, cart.Lines)
	assert.Equal(t, 5, env.stockOf(t, "p1"))
}
