package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
)

// CatalogUseCase administración del catálogo. Listar es para todos; crear,
// actualizar y borrar son acciones de dueño. El stock solo lo mueve el
// conciliador, nunca una edición directa.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List devuelve el catálogo completo en orden de creación.
func (uc *CatalogUseCase) List() ([]dto.ProductResponse, error) {
	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// Create da de alta un producto. Los montos y cantidades negativos se
// recortan a cero en esta frontera.
func (uc *CatalogUseCase) Create(role string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		Barcode:       in.Barcode,
		Name:          strings.TrimSpace(in.Name),
		Price:         clampDecimal(in.Price),
		CostPrice:     clampDecimal(in.CostPrice),
		ImageURL:      in.ImageURL,
		QuickSelect:   in.QuickSelect,
		StockQuantity: clampInt(in.StockQuantity),
		MinStockLevel: clampInt(in.MinStockLevel),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(p); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(*p)
	return &resp, nil
}

// Update actualiza los campos presentes. No permite tocar el stock.
func (uc *CatalogUseCase) Update(role, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if role != entity.RoleOwner {
		return nil, domain.ErrForbidden
	}
	p, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Barcode != nil {
		p.Barcode = *in.Barcode
	}
	if in.Price != nil {
		p.Price = clampDecimal(*in.Price)
	}
	if in.CostPrice != nil {
		p.CostPrice = clampDecimal(*in.CostPrice)
	}
	if in.ImageURL != nil {
		p.ImageURL = *in.ImageURL
	}
	if in.QuickSelect != nil {
		p.QuickSelect = *in.QuickSelect
	}
	if in.MinStockLevel != nil {
		p.MinStockLevel = clampInt(*in.MinStockLevel)
	}
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(p); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(*p)
	return &resp, nil
}

// Delete elimina un producto del catálogo (solo dueño; nunca automático).
func (uc *CatalogUseCase) Delete(role, id string) error {
	if role != entity.RoleOwner {
		return domain.ErrForbidden
	}
	return uc.products.Delete(id)
}
