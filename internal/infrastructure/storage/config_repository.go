package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tu-usuario/abuela-pos/internal/application/ports"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
	"github.com/tu-usuario/abuela-pos/pkg/config"
	"github.com/tu-usuario/abuela-pos/pkg/logger"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// ConfigRepo mantiene la configuración de la tienda y el saldo de créditos IA.
// Van en direcciones separadas: los créditos cambian en cada llamada a la IA
// y la configuración casi nunca.
type ConfigRepo struct {
	mu      sync.RWMutex
	store   ports.SnapshotStore
	log     *logger.Logger
	cfg     entity.ShopConfig
	credits int
}

// NewConfigRepo carga ambos snapshots. En el primer arranque aplica los
// valores de la configuración de la app (semana, política de recepción,
// créditos iniciales).
func NewConfigRepo(ctx context.Context, store ports.SnapshotStore, defaults config.ShopConfig, log *logger.Logger) (*ConfigRepo, error) {
	repo := &ConfigRepo{
		store: store,
		log:   log,
		cfg: entity.ShopConfig{
			WeekStart:         defaults.WeekStart,
			IntakeMatchPolicy: defaults.IntakeMatchPolicy,
		},
		credits: defaults.InitialCredits,
	}

	blob, err := store.Load(ctx, ports.AddrConfig)
	if err != nil {
		return nil, err
	}
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &repo.cfg); err != nil {
			log.Warn().Err(err).Msg("Snapshot de configuración corrupto, usando valores por defecto")
		}
	}

	blob, err = store.Load(ctx, ports.AddrCredits)
	if err != nil {
		return nil, err
	}
	if len(blob) > 0 {
		var credits int
		if err := json.Unmarshal(blob, &credits); err != nil {
			log.Warn().Err(err).Msg("Snapshot de créditos corrupto, usando saldo inicial")
		} else {
			repo.credits = credits
		}
	}
	return repo, nil
}

func (r *ConfigRepo) GetConfig() (entity.ShopConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg, nil
}

func (r *ConfigRepo) SaveConfig(cfg entity.ShopConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg = cfg
	blob, err := json.Marshal(r.cfg)
	if err != nil {
		r.log.Error().Err(err).Msg("Serializar configuración")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := r.store.Save(ctx, ports.AddrConfig, blob); err != nil {
		r.log.Error().Err(err).Msg("Espejar configuración al store")
	}
	return nil
}

func (r *ConfigRepo) GetCredits() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.credits, nil
}

func (r *ConfigRepo) SetCredits(credits int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.credits = credits
	blob, err := json.Marshal(credits)
	if err != nil {
		r.log.Error().Err(err).Msg("Serializar créditos")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := r.store.Save(ctx, ports.AddrCredits, blob); err != nil {
		r.log.Error().Err(err).Msg("Espejar créditos al store")
	}
	return nil
}
