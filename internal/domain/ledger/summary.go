// Package ledger contiene los cálculos derivados del libro de transacciones.
// Todo es función pura del contenido del libro más un instante explícito:
// nada de globals mutables ni cachés.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
)

// SummaryStats resumen financiero derivado del libro. Nunca se persiste.
type SummaryStats struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`

	DailyInvestment   decimal.Decimal `json:"dailyInvestment"`
	WeeklyInvestment  decimal.Decimal `json:"weeklyInvestment"`
	MonthlyInvestment decimal.Decimal `json:"monthlyInvestment"`
	YearlyInvestment  decimal.Decimal `json:"yearlyInvestment"`

	ByCategory map[string]decimal.Decimal `json:"byCategory"` // solo registros que no son venta
	TotalSales decimal.Decimal            `json:"totalSales"` // ventas de toda la historia
}

// ParseWeekStart convierte la convención configurada a time.Weekday.
// El valor por defecto es domingo.
func ParseWeekStart(s string) time.Weekday {
	if strings.EqualFold(s, "monday") {
		return time.Monday
	}
	return time.Sunday
}

// Summarize recorre el libro una sola vez (O(n), sin ordenar) y acumula el
// total de cada registro en las ventanas de calendario a las que pertenece
// respecto de now: mismo día, misma semana (según weekStart), mismo mes y
// mismo año. Las ventas van a los acumuladores de venta; el resto a los de
// inversión y a su categoría. now es un parámetro explícito para que el
// resultado sea reproducible.
func Summarize(records []entity.Record, now time.Time, weekStart time.Weekday) SummaryStats {
	stats := SummaryStats{
		Daily: decimal.Zero, Weekly: decimal.Zero, Monthly: decimal.Zero, Yearly: decimal.Zero,
		DailyInvestment: decimal.Zero, WeeklyInvestment: decimal.Zero,
		MonthlyInvestment: decimal.Zero, YearlyInvestment: decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal, len(entity.Categories)),
		TotalSales: decimal.Zero,
	}
	for _, c := range entity.Categories {
		stats.ByCategory[c] = decimal.Zero
	}

	for _, r := range records {
		t := r.Timestamp
		if r.Type == entity.RecordTypeSale {
			stats.TotalSales = stats.TotalSales.Add(r.TotalCost)
			if sameDay(t, now) {
				stats.Daily = stats.Daily.Add(r.TotalCost)
			}
			if sameWeek(t, now, weekStart) {
				stats.Weekly = stats.Weekly.Add(r.TotalCost)
			}
			if sameMonth(t, now) {
				stats.Monthly = stats.Monthly.Add(r.TotalCost)
			}
			if sameYear(t, now) {
				stats.Yearly = stats.Yearly.Add(r.TotalCost)
			}
			continue
		}
		if sameDay(t, now) {
			stats.DailyInvestment = stats.DailyInvestment.Add(r.TotalCost)
		}
		if sameWeek(t, now, weekStart) {
			stats.WeeklyInvestment = stats.WeeklyInvestment.Add(r.TotalCost)
		}
		if sameMonth(t, now) {
			stats.MonthlyInvestment = stats.MonthlyInvestment.Add(r.TotalCost)
		}
		if sameYear(t, now) {
			stats.YearlyInvestment = stats.YearlyInvestment.Add(r.TotalCost)
		}
		stats.ByCategory[r.Category] = stats.ByCategory[r.Category].Add(r.TotalCost)
	}
	return stats
}

// IceBalance devuelve las bolsas de hielo pendientes: entregadas menos
// devueltas sobre todo el libro. Puede ser negativo; eso señala un error de
// captura y se reporta tal cual, no se oculta.
func IceBalance(records []entity.Record) int {
	delivered, returned := 0, 0
	for _, r := range records {
		if r.IceMetrics == nil {
			continue
		}
		delivered += r.IceMetrics.Delivered
		returned += r.IceMetrics.Returned
	}
	return delivered - returned
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameWeek(a, b time.Time, weekStart time.Weekday) bool {
	return startOfWeek(a, weekStart).Equal(startOfWeek(b, weekStart))
}

func startOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	days := (int(t.Weekday()) - int(weekStart) + 7) % 7
	y, m, d := t.AddDate(0, 0, -days).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func sameYear(a, b time.Time) bool {
	return a.Year() == b.Year()
}
