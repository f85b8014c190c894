package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
)

// POSHandler maneja el carrito del punto de venta y el cierre de ventas.
type POSHandler struct {
	uc *usecase.POSUseCase
}

// NewPOSHandler construye el handler.
func NewPOSHandler(uc *usecase.POSUseCase) *POSHandler {
	return &POSHandler{uc: uc}
}

// Scan godoc
// @Summary      Reconocer un producto por foto
// @Description  Consume un crédito de IA y busca el nombre reconocido en el catálogo.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanProductRequest  true  "Imagen en base64"
// @Success      200   {object}  dto.ScanProductResponse
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pos/scan [post]
func (h *POSHandler) Scan(c *fiber.Ctx) error {
	var in dto.ScanProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ImageBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "imageBase64 es requerido"})
	}
	out, err := h.uc.Scan(c.Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cart godoc
// @Summary      Ver el carrito abierto
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartView
// @Router       /api/pos/cart [get]
func (h *POSHandler) Cart(c *fiber.Ctx) error {
	out, err := h.uc.Cart()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar un producto al carrito
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.CartView
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pos/cart/items [post]
func (h *POSHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId es requerido"})
	}
	out, err := h.uc.AddItem(in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar un producto del carrito
// @Tags         pos
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CartView
// @Router       /api/pos/cart/items/{productId} [delete]
func (h *POSHandler) RemoveItem(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	out, err := h.uc.RemoveItem(productID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Cerrar la venta
// @Description  Crea el registro de venta, descuenta stock (sin bajar de cero) y calcula el vuelto.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Efectivo recibido (opcional)"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/pos/checkout [post]
func (h *POSHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Checkout(in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Discard godoc
// @Summary      Vaciar el carrito
// @Tags         pos
// @Security     Bearer
// @Success      204  "Carrito vaciado"
// @Router       /api/pos/cart [delete]
func (h *POSHandler) Discard(c *fiber.Ctx) error {
	h.uc.Discard()
	return c.SendStatus(fiber.StatusNoContent)
}
