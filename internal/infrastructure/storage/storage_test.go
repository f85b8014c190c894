package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/abuela-pos/internal/application/ports"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/infrastructure/storage"
	"github.com/tu-usuario/abuela-pos/pkg/config"
	"github.com/tu-usuario/abuela-pos/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

// El FileStore guarda un archivo por dirección y distingue ausencia de error.
func TestFileStore_GuardaYCarga(t *testing.T) {
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	blob, err := store.Load(ctx, ports.AddrRecords)
	require.NoError(t, err)
	assert.Nil(t, blob, "una dirección nunca escrita carga como nil, no como error")

	require.NoError(t, store.Save(ctx, ports.AddrRecords, []byte(`[{"id":"r1"}]`)))
	blob, err = store.Load(ctx, ports.AddrRecords)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"r1"}]`, string(blob))

	// Sobrescribir reemplaza el contenido completo.
	require.NoError(t, store.Save(ctx, ports.AddrRecords, []byte(`[]`)))
	blob, err = store.Load(ctx, ports.AddrRecords)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(blob))
}

// El libro sobrevive a un reinicio: lo que un repositorio espejó, otro
// construido sobre el mismo store lo carga.
func TestRecordRepo_SobreviveReinicio(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	repo, err := storage.NewRecordRepo(ctx, store, testLogger())
	require.NoError(t, err)

	base := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(&entity.Record{
		ID: "r2", Timestamp: base.Add(time.Hour), Type: entity.RecordTypeSale,
		Category: entity.CategorySale, TotalCost: decimal.NewFromInt(50), Synced: true,
	}))
	require.NoError(t, repo.Append(&entity.Record{
		ID: "r1", Timestamp: base, Type: entity.RecordTypeInvestment,
		Category: entity.CategoryIce, TotalCost: decimal.NewFromInt(120),
		IceMetrics: &entity.IceMetrics{Delivered: 10, Returned: 2},
	}))

	reiniciado, err := storage.NewRecordRepo(ctx, store, testLogger())
	require.NoError(t, err)

	asc, err := reiniciado.ListAsc()
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "r1", asc[0].ID, "tras recargar, el orden es por timestamp")
	assert.True(t, asc[1].TotalCost.Equal(decimal.NewFromInt(50)), "los montos sobreviven el round-trip")
	require.NotNil(t, asc[0].IceMetrics)
	assert.Equal(t, 10, asc[0].IceMetrics.Delivered)
	assert.True(t, asc[1].Synced)

	desc, err := reiniciado.ListDesc()
	require.NoError(t, err)
	assert.Equal(t, "r2", desc[0].ID)

	assert.ErrorIs(t, reiniciado.Delete("no-existe"), domain.ErrNotFound)
	require.NoError(t, reiniciado.Delete("r1"))
	asc, err = reiniciado.ListAsc()
	require.NoError(t, err)
	assert.Len(t, asc, 1)
}

// El catálogo preserva el orden de alta tras el reinicio (el desempate del
// matcher depende de ese orden).
func TestProductRepo_PreservaOrdenDeAlta(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()

	repo, err := storage.NewProductRepo(ctx, store, testLogger())
	require.NoError(t, err)

	require.NoError(t, repo.Create(&entity.Product{ID: "p1", Name: "Hielo grande"}))
	require.NoError(t, repo.Create(&entity.Product{ID: "p2", Name: "Hielo pequeño"}))
	assert.ErrorIs(t, repo.Create(&entity.Product{ID: "p1", Name: "Duplicado"}), domain.ErrDuplicate)

	reiniciado, err := storage.NewProductRepo(ctx, store, testLogger())
	require.NoError(t, err)

	list, err := reiniciado.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p1", list[0].ID)
	assert.Equal(t, "p2", list[1].ID)

	p, err := reiniciado.GetByID("no-existe")
	require.NoError(t, err, "producto ausente no es un error")
	assert.Nil(t, p)

	// ReplaceAll sustituye el catálogo completo de una sola vez.
	list[0].StockQuantity = 99
	require.NoError(t, reiniciado.ReplaceAll(list))
	p, err = reiniciado.GetByID("p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 99, p.StockQuantity)
}

// La configuración y los créditos arrancan con los valores iniciales y luego
// persisten lo guardado.
func TestConfigRepo_DefaultsYPersistencia(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	defaults := config.ShopConfig{
		WeekStart:         "sunday",
		IntakeMatchPolicy: entity.IntakeMatchExact,
		InitialCredits:    100,
	}

	repo, err := storage.NewConfigRepo(ctx, store, defaults, testLogger())
	require.NoError(t, err)

	cfg, err := repo.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "sunday", cfg.WeekStart)
	n, err := repo.GetCredits()
	require.NoError(t, err)
	assert.Equal(t, 100, n)

	cfg.WeekStart = "monday"
	cfg.SyncEnabled = true
	require.NoError(t, repo.SaveConfig(cfg))
	require.NoError(t, repo.SetCredits(42))

	reiniciado, err := storage.NewConfigRepo(ctx, store, defaults, testLogger())
	require.NoError(t, err)

	cfg, err = reiniciado.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "monday", cfg.WeekStart, "lo persistido gana a los defaults")
	assert.True(t, cfg.SyncEnabled)
	n, err = reiniciado.GetCredits()
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

// Un snapshot corrupto no tumba el arranque: se ignora y se parte de cero.
func TestRecordRepo_SnapshotCorruptoArrancaVacio(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, ports.AddrRecords, []byte("{esto no es json")))

	repo, err := storage.NewRecordRepo(ctx, store, testLogger())
	require.NoError(t, err)

	list, err := repo.ListAsc()
	require.NoError(t, err)
	assert.Empty(t, list)
}
