package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
)

// SessionHandler maneja la sesión de recepción de mercancía: escanear recibo,
// revisar el borrador y confirmarlo o descartarlo.
type SessionHandler struct {
	uc *usecase.SessionUseCase
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *usecase.SessionUseCase) *SessionHandler {
	return &SessionHandler{uc: uc}
}

// View godoc
// @Summary      Estado del borrador de recepción
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SessionView
// @Router       /api/session [get]
func (h *SessionHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.uc.View())
}

// ScanReceipt godoc
// @Summary      Abrir borrador desde la foto de un recibo
// @Description  Consume un crédito de IA. Si el modelo no entiende el recibo,
// @Description  abre igualmente un borrador vacío para captura manual.
// @Tags         session
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanReceiptRequest  true  "Imagen en base64"
// @Success      200   {object}  dto.SessionView
// @Failure      402   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/session/scan [post]
func (h *SessionHandler) ScanReceipt(c *fiber.Ctx) error {
	var in dto.ScanReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ImageBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "imageBase64 es requerido"})
	}
	out, err := h.uc.StartFromReceipt(c.Context(), in.ImageBase64)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// StartManual godoc
// @Summary      Abrir borrador vacío sin IA
// @Tags         session
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartManualSessionRequest  true  "Categoría del registro"
// @Success      200   {object}  dto.SessionView
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/session/manual [post]
func (h *SessionHandler) StartManual(c *fiber.Ctx) error {
	var in dto.StartManualSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.StartManual(in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Edit godoc
// @Summary      Editar el borrador pendiente
// @Tags         session
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EditSessionRequest  true  "Campos a reemplazar"
// @Success      200   {object}  dto.SessionView
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/session [patch]
func (h *SessionHandler) Edit(c *fiber.Ctx) error {
	var in dto.EditSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Edit(in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Commit godoc
// @Summary      Confirmar el borrador
// @Description  Crea el registro en el libro y aplica el stock recibido al catálogo.
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.RecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/session/commit [post]
func (h *SessionHandler) Commit(c *fiber.Ctx) error {
	out, err := h.uc.Commit()
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Discard godoc
// @Summary      Descartar el borrador
// @Tags         session
// @Security     Bearer
// @Success      204  "Borrador descartado"
// @Router       /api/session [delete]
func (h *SessionHandler) Discard(c *fiber.Ctx) error {
	h.uc.Discard()
	return c.SendStatus(fiber.StatusNoContent)
}
