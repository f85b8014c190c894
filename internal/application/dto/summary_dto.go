package dto

import "github.com/tu-usuario/abuela-pos/internal/domain/ledger"

// SummaryResponse resumen del tablero: estadísticas derivadas del libro más
// el saldo de créditos de IA, que el tablero muestra junto a las cifras.
type SummaryResponse struct {
	ledger.SummaryStats
	AICredits int `json:"aiCredits"`
}

// IceBalanceResponse bolsas de hielo pendientes (puede ser negativo).
type IceBalanceResponse struct {
	Balance int `json:"balance"`
}
