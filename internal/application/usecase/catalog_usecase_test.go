package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
)

// El alta es acción de dueña y recorta montos negativos en la frontera.
func TestCatalog_CrearSoloDuenaYRecorta(t *testing.T) {
	env := newTestEnv(t, 5)
	uc := usecase.NewCatalogUseCase(env.products)

	_, err := uc.Create(entity.RoleStaff, dto.CreateProductRequest{Name: "Hielo"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Create(entity.RoleOwner, dto.CreateProductRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el nombre es obligatorio")

	out, err := uc.Create(entity.RoleOwner, dto.CreateProductRequest{
		Name:          "  Hielo  ",
		Price:         decimal.NewFromInt(-15),
		StockQuantity: -3,
		MinStockLevel: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Hielo", out.Name, "el nombre se guarda recortado")
	assert.True(t, out.Price.Equal(decimal.Zero))
	assert.Equal(t, 0, out.StockQuantity)
	assert.NotEmpty(t, out.ID)
}

// La actualización es parcial: solo los campos presentes cambian; el stock
// no se puede tocar por esta vía.
func TestCatalog_ActualizacionParcial(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Coca-Cola 1.25L", 25, 10)
	uc := usecase.NewCatalogUseCase(env.products)

	nuevoPrecio := decimal.NewFromInt(28)
	out, err := uc.Update(entity.RoleOwner, "p1", dto.UpdateProductRequest{Price: &nuevoPrecio})
	require.NoError(t, err)

	assert.True(t, out.Price.Equal(nuevoPrecio))
	assert.Equal(t, "Coca-Cola 1.25L", out.Name, "los campos ausentes no cambian")
	assert.Equal(t, 10, out.StockQuantity, "el stock solo lo mueve el conciliador")

	_, err = uc.Update(entity.RoleOwner, "no-existe", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(entity.RoleStaff, "p1", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// La señal de stock bajo aparece cuando las existencias llegan al mínimo.
func TestCatalog_SenalDeStockBajo(t *testing.T) {
	env := newTestEnv(t, 5)
	require.NoError(t, env.products.Create(&entity.Product{
		ID: "p1", Name: "Hielo", StockQuantity: 2, MinStockLevel: 3,
	}))
	uc := usecase.NewCatalogUseCase(env.products)

	out, err := uc.List()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].LowStock)
}

// Borrar es de dueña; borrar lo inexistente es ErrNotFound.
func TestCatalog_Borrar(t *testing.T) {
	env := newTestEnv(t, 5)
	env.seedProduct(t, "p1", "Hielo", 15, 5)
	uc := usecase.NewCatalogUseCase(env.products)

	assert.ErrorIs(t, uc.Delete(entity.RoleStaff, "p1"), domain.ErrForbidden)
	require.NoError(t, uc.Delete(entity.RoleOwner, "p1"))
	assert.ErrorIs(t, uc.Delete(entity.RoleOwner, "p1"), domain.ErrNotFound)
}
