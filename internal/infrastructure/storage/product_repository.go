package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tu-usuario/abuela-pos/internal/application/ports"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
	"github.com/tu-usuario/abuela-pos/pkg/logger"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo mantiene el catálogo en memoria preservando el orden de alta,
// que es el orden de desempate del matcher.
type ProductRepo struct {
	mu       sync.RWMutex
	store    ports.SnapshotStore
	log      *logger.Logger
	products []entity.Product
}

func NewProductRepo(ctx context.Context, store ports.SnapshotStore, log *logger.Logger) (*ProductRepo, error) {
	repo := &ProductRepo{store: store, log: log}
	blob, err := store.Load(ctx, ports.AddrProducts)
	if err != nil {
		return nil, err
	}
	if len(blob) > 0 {
		if err := json.Unmarshal(blob, &repo.products); err != nil {
			log.Warn().Err(err).Msg("Snapshot de productos corrupto, arrancando vacío")
			repo.products = nil
		}
	}
	return repo, nil
}

func (r *ProductRepo) Create(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == product.ID {
			return domain.ErrDuplicate
		}
	}
	r.products = append(r.products, *product)
	r.persist()
	return nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = *product
			r.persist()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			r.persist()
			return nil
		}
	}
	return domain.ErrNotFound
}

// GetByID devuelve (nil, nil) si el producto no existe.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

// List devuelve el catálogo en orden de alta.
func (r *ProductRepo) List() ([]entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// ReplaceAll sustituye el catálogo completo; lo usan la recepción de mercancía
// y el checkout para aplicar los stocks recalculados de una sola vez.
func (r *ProductRepo) ReplaceAll(products []entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = make([]entity.Product, len(products))
	copy(r.products, products)
	r.persist()
	return nil
}

func (r *ProductRepo) persist() {
	blob, err := json.Marshal(r.products)
	if err != nil {
		r.log.Error().Err(err).Msg("Serializar catálogo")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := r.store.Save(ctx, ports.AddrProducts, blob); err != nil {
		r.log.Error().Err(err).Msg("Espejar catálogo al store")
	}
}
