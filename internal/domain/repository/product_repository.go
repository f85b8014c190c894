package repository

import "github.com/tu-usuario/abuela-pos/internal/domain/entity"

// ProductRepository acceso al catálogo de productos del punto de venta.
type ProductRepository interface {
	Create(p *entity.Product) error
	Update(p *entity.Product) error // domain.ErrNotFound si no existe
	Delete(id string) error         // domain.ErrNotFound si no existe
	GetByID(id string) (*entity.Product, error) // nil, nil si no existe
	// List devuelve el catálogo completo en orden de creación (el orden es
	// relevante: el desempate del matcher difuso depende de él).
	List() ([]entity.Product, error)
	// ReplaceAll sustituye el catálogo completo (usado por el conciliador de
	// stock, que trabaja sobre una copia y la devuelve actualizada).
	ReplaceAll(products []entity.Product) error
}
