package repository

import "github.com/tu-usuario/abuela-pos/internal/domain/entity"

// ConfigRepository configuración de la tienda y saldo de créditos de IA.
type ConfigRepository interface {
	GetConfig() (entity.ShopConfig, error)
	SaveConfig(cfg entity.ShopConfig) error
	GetCredits() (int, error)
	SetCredits(n int) error
}
