package usecase

import (
	"sync"

	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
)

// topUpAmount créditos que agrega cada recarga.
const topUpAmount = 50

// CreditsUseCase administra el saldo de créditos de IA: cada llamada al
// modelo consume uno y la recarga agrega un bloque fijo.
type CreditsUseCase struct {
	mu     sync.Mutex
	config repository.ConfigRepository
}

// NewCreditsUseCase construye el caso de uso.
func NewCreditsUseCase(config repository.ConfigRepository) *CreditsUseCase {
	return &CreditsUseCase{config: config}
}

// Consume descuenta un crédito. Con saldo cero devuelve ErrAIQuotaExceeded,
// que la capa de sesión reporta igual que la cuota agotada del proveedor.
func (uc *CreditsUseCase) Consume() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	n, err := uc.config.GetCredits()
	if err != nil {
		return err
	}
	if n <= 0 {
		return domain.ErrAIQuotaExceeded
	}
	return uc.config.SetCredits(n - 1)
}

// TopUp agrega un bloque de créditos y devuelve el saldo resultante.
func (uc *CreditsUseCase) TopUp() (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	n, err := uc.config.GetCredits()
	if err != nil {
		return 0, err
	}
	n += topUpAmount
	if err := uc.config.SetCredits(n); err != nil {
		return 0, err
	}
	return n, nil
}

// Balance devuelve el saldo actual.
func (uc *CreditsUseCase) Balance() (int, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.config.GetCredits()
}
