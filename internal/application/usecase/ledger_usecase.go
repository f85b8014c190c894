package usecase

import (
	"time"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/ledger"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
)

// LedgerUseCase lectura del libro y eliminación restringida al dueño.
// Los registros jamás se actualizan en sitio.
type LedgerUseCase struct {
	records repository.RecordRepository
	config  repository.ConfigRepository
	credits *CreditsUseCase
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(records repository.RecordRepository, config repository.ConfigRepository, credits *CreditsUseCase) *LedgerUseCase {
	return &LedgerUseCase{records: records, config: config, credits: credits}
}

// List devuelve el libro completo por timestamp descendente (para mostrar).
func (uc *LedgerUseCase) List() ([]dto.RecordResponse, error) {
	records, err := uc.records.ListDesc()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.ToRecordResponse(r))
	}
	return out, nil
}

// Delete elimina un registro. Solo el dueño puede: un intento de personal se
// rechaza con ErrForbidden y el libro queda intacto.
func (uc *LedgerUseCase) Delete(id, role string) error {
	if role != entity.RoleOwner {
		return domain.ErrForbidden
	}
	return uc.records.Delete(id)
}

// Summarize calcula el resumen del tablero para el instante dado (now es
// explícito para que el resultado sea reproducible; nil = ahora).
func (uc *LedgerUseCase) Summarize(now *time.Time) (*dto.SummaryResponse, error) {
	records, err := uc.records.ListAsc()
	if err != nil {
		return nil, err
	}
	cfg, err := uc.config.GetConfig()
	if err != nil {
		return nil, err
	}
	at := time.Now()
	if now != nil {
		at = *now
	}
	stats := ledger.Summarize(records, at, ledger.ParseWeekStart(cfg.WeekStart))
	credits, err := uc.credits.Balance()
	if err != nil {
		return nil, err
	}
	return &dto.SummaryResponse{SummaryStats: stats, AICredits: credits}, nil
}

// IceBalance bolsas de hielo pendientes sobre todo el libro.
func (uc *LedgerUseCase) IceBalance() (*dto.IceBalanceResponse, error) {
	records, err := uc.records.ListAsc()
	if err != nil {
		return nil, err
	}
	return &dto.IceBalanceResponse{Balance: ledger.IceBalance(records)}, nil
}
