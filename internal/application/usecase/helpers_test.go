package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/infrastructure/storage"
	"github.com/tu-usuario/abuela-pos/pkg/config"
	"github.com/tu-usuario/abuela-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test: repositorios reales sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	records  *storage.RecordRepo
	products *storage.ProductRepo
	config   *storage.ConfigRepo
	credits  *usecase.CreditsUseCase
}

// newTestEnv arma los repositorios sobre un MemoryStore limpio con los valores
// iniciales indicados.
func newTestEnv(t *testing.T, initialCredits int) *testEnv {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	store := storage.NewMemoryStore()
	ctx := context.Background()

	records, err := storage.NewRecordRepo(ctx, store, log)
	require.NoError(t, err)
	products, err := storage.NewProductRepo(ctx, store, log)
	require.NoError(t, err)
	cfgRepo, err := storage.NewConfigRepo(ctx, store, config.ShopConfig{
		WeekStart:         "sunday",
		IntakeMatchPolicy: entity.IntakeMatchExact,
		InitialCredits:    initialCredits,
	}, log)
	require.NoError(t, err)

	return &testEnv{
		records:  records,
		products: products,
		config:   cfgRepo,
		credits:  usecase.NewCreditsUseCase(cfgRepo),
	}
}

// seedProduct da de alta un producto con stock y precio conocidos.
func (e *testEnv) seedProduct(t *testing.T, id, name string, price int64, stockQty int) {
	t.Helper()
	err := e.products.Create(&entity.Product{
		ID: id, Name: name,
		Price:         decimal.NewFromInt(price),
		StockQuantity: stockQty,
	})
	require.NoError(t, err)
}

func (e *testEnv) stockOf(t *testing.T, id string) int {
	t.Helper()
	p, err := e.products.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockQuantity
}

func (e *testEnv) creditBalance(t *testing.T) int {
	t.Helper()
	n, err := e.credits.Balance()
	require.NoError(t, err)
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de los puertos de IA
// ──────────────────────────────────────────────────────────────────────────────

// fakeReader devuelve las respuestas en orden; cada llamada consume una.
type fakeReader struct {
	calls  int
	drafts []*dto.ReceiptDraft
	errs   []error
}

func (f *fakeReader) ReadReceipt(_ context.Context, _ string) (*dto.ReceiptDraft, error) {
	i := f.calls
	f.calls++
	var d *dto.ReceiptDraft
	var err error
	if i < len(f.drafts) {
		d = f.drafts[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	if d == nil && err == nil {
		err = errors.New("sin respuesta programada")
	}
	return d, err
}

// fakeRecognizer análogo para el reconocimiento de productos.
type fakeRecognizer struct {
	calls int
	names []string
	errs  []error
}

func (f *fakeRecognizer) RecognizeProduct(_ context.Context, _ string, _ []string) (string, error) {
	i := f.calls
	f.calls++
	var name string
	var err error
	if i < len(f.names) {
		name = f.names[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return name, err
}
