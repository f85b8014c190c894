package storage

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/tu-usuario/abuela-pos/internal/application/ports"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
	"github.com/tu-usuario/abuela-pos/pkg/logger"
)

// persistTimeout acota las escrituras al SnapshotStore; una escritura lenta
// no debe bloquear la operación que la disparó más allá de esto.
const persistTimeout = 5 * time.Second

var _ repository.RecordRepository = (*RecordRepo)(nil)

// RecordRepo mantiene el ledger en memoria y lo espeja al SnapshotStore
// después de cada mutación. Si el espejo falla solo se registra el error:
// la operación de negocio ya se completó.
type RecordRepo struct {
	mu      sync.RWMutex
	store   ports.SnapshotStore
	log     *logger.Logger
	records []entity.Record
}

// NewRecordRepo carga el snapshot del ledger. Un snapshot ausente o corrupto
// arranca con ledger vacío.
func NewRecordRepo(ctx context.Context, store ports.SnapshotStore, log *logger.Logger) (*RecordRepo, error) {
	repo := &RecordRepo{store: store, log: log}
	blob, err := store.Load(ctx, ports.AddrRecords)
	if err != nil {
		return nil, err
	}
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &repo.records); err != nil {
			log.Warn().Err(err).Msg("Snapshot de registros corrupto, arrancando vacío")
			repo.records = nil
		}
	}
	sort.SliceStable(repo.records, func(i, j int) bool {
		return repo.records[i].Timestamp.Before(repo.records[j].Timestamp)
	})
	return repo, nil
}

func (r *RecordRepo) Append(record *entity.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	r.persist()
	return nil
}

func (r *RecordRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			r.persist()
			return nil
		}
	}
	return domain.ErrNotFound
}

// ListAsc devuelve los registros del más antiguo al más reciente.
func (r *RecordRepo) ListAsc() ([]entity.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

// ListDesc devuelve los registros del más reciente al más antiguo.
func (r *RecordRepo) ListDesc() ([]entity.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Record, len(r.records))
	for i, rec := range r.records {
		out[len(r.records)-1-i] = rec
	}
	return out, nil
}

// persist se llama con el lock tomado.
func (r *RecordRepo) persist() {
	blob, err := json.Marshal(r.records)
	if err != nil {
		r.log.Error().Err(err).Msg("Serializar ledger")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := r.store.Save(ctx, ports.AddrRecords, blob); err != nil {
		r.log.Error().Err(err).Msg("Espejar ledger al store")
	}
}
