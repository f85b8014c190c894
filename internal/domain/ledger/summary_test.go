package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/ledger"
)

func venta(ts time.Time, total int64) entity.Record {
	return entity.Record{
		Type: entity.RecordTypeSale, Category: entity.CategorySale,
		Timestamp: ts, TotalCost: decimal.NewFromInt(total),
	}
}

func inversion(ts time.Time, categoria string, total int64) entity.Record {
	return entity.Record{
		Type: entity.RecordTypeInvestment, Category: categoria,
		Timestamp: ts, TotalCost: decimal.NewFromInt(total),
	}
}

func igual(t *testing.T, esperado int64, got decimal.Decimal, msg string) {
	t.Helper()
	assert.True(t, got.Equal(decimal.NewFromInt(esperado)),
		"%s: esperado %d, got %s", msg, esperado, got)
}

// Escenario de referencia: sábado 2024-06-15 10:00, semana que inicia domingo
// (la semana en curso va del 9 al 15 de junio).
func TestSummarize_VentanasDeCalendario(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	registros := []entity.Record{
		venta(time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC), 150),  // hoy
		venta(time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC), 100), // misma semana
		venta(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), 200),   // mismo mes, otra semana
		venta(time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC), 300),  // mismo año
		venta(time.Date(2023, 12, 30, 9, 0, 0, 0, time.UTC), 400), // año anterior
		inversion(time.Date(2024, 6, 15, 7, 0, 0, 0, time.UTC), entity.CategoryIce, 80),
		inversion(time.Date(2024, 6, 3, 7, 0, 0, 0, time.UTC), entity.CategoryBeverage, 50),
	}

	stats := ledger.Summarize(registros, now, time.Sunday)

	igual(t, 150, stats.Daily, "ventas del día")
	igual(t, 250, stats.Weekly, "ventas de la semana")
	igual(t, 450, stats.Monthly, "ventas del mes")
	igual(t, 750, stats.Yearly, "ventas del año")
	igual(t, 1150, stats.TotalSales, "ventas históricas")

	igual(t, 80, stats.DailyInvestment, "inversión del día")
	igual(t, 80, stats.WeeklyInvestment, "inversión de la semana")
	igual(t, 130, stats.MonthlyInvestment, "inversión del mes")
	igual(t, 130, stats.YearlyInvestment, "inversión del año")

	igual(t, 80, stats.ByCategory[entity.CategoryIce], "categoría hielo")
	igual(t, 50, stats.ByCategory[entity.CategoryBeverage], "categoría bebidas")
	igual(t, 0, stats.ByCategory[entity.CategoryOthers], "categoría otros presente en cero")
}

// El resultado depende solo de (registros, now, weekStart): dos llamadas con
// los mismos argumentos devuelven exactamente lo mismo.
func TestSummarize_Determinista(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	registros := []entity.Record{
		venta(now.Add(-time.Hour), 99),
		inversion(now.Add(-2*time.Hour), entity.CategoryOthers, 10),
	}

	a := ledger.Summarize(registros, now, time.Sunday)
	b := ledger.Summarize(registros, now, time.Sunday)

	assert.Equal(t, a, b)
}

// Cambiar el inicio de semana mueve registros entre semanas.
func TestSummarize_InicioDeSemanaConfigurable(t *testing.T) {
	// now es domingo 16 de junio; la venta fue el sábado 15.
	now := time.Date(2024, 6, 16, 10, 0, 0, 0, time.UTC)
	registros := []entity.Record{
		venta(time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC), 100),
	}

	conDomingo := ledger.Summarize(registros, now, time.Sunday)
	igual(t, 0, conDomingo.Weekly, "con semana de domingo, el sábado quedó en la semana pasada")

	conLunes := ledger.Summarize(registros, now, time.Monday)
	igual(t, 100, conLunes.Weekly, "con semana de lunes, sábado y domingo comparten semana")
}

// Libro vacío: todo en cero y todas las categorías presentes.
func TestSummarize_LibroVacio(t *testing.T) {
	stats := ledger.Summarize(nil, time.Now(), time.Sunday)

	igual(t, 0, stats.Daily, "día")
	igual(t, 0, stats.TotalSales, "histórico")
	assert.Len(t, stats.ByCategory, len(entity.Categories))
}

func TestParseWeekStart(t *testing.T) {
	assert.Equal(t, time.Monday, ledger.ParseWeekStart("monday"))
	assert.Equal(t, time.Monday, ledger.ParseWeekStart("Monday"))
	assert.Equal(t, time.Sunday, ledger.ParseWeekStart("sunday"))
	assert.Equal(t, time.Sunday, ledger.ParseWeekStart(""), "el defecto es domingo")
}

// El balance de hielo es entregadas menos devueltas y puede ser negativo.
func TestIceBalance_PuedeSerNegativo(t *testing.T) {
	registros := []entity.Record{
		{IceMetrics: &entity.IceMetrics{Delivered: 10, Returned: 3}},
		{IceMetrics: &entity.IceMetrics{Delivered: 2, Returned: 12}},
		{}, // sin métricas de hielo
	}

	assert.Equal(t, -3, ledger.IceBalance(registros))
	assert.Equal(t, 0, ledger.IceBalance(nil))
}
