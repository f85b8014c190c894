package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
)

// LedgerHandler maneja el libro de registros y sus resúmenes.
type LedgerHandler struct {
	uc *usecase.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// List godoc
// @Summary      Listar registros del libro (más recientes primero)
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RecordResponse
// @Router       /api/records [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un registro (solo dueña)
// @Description  Borra solo el asiento del libro; el stock aplicado no se revierte.
// @Tags         records
// @Security     Bearer
// @Param        id  path  string  true  "ID del registro"
// @Success      204  "Registro eliminado"
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/records/{id} [delete]
func (h *LedgerHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id, GetRole(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Resumen de ventas e inversión (día, semana, mes, año)
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Param        at  query  string  false  "Momento de referencia (RFC3339); por defecto ahora"
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/records/summary [get]
func (h *LedgerHandler) Summary(c *fiber.Ctx) error {
	var at *time.Time
	if raw := c.Query("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "at debe ser RFC3339"})
		}
		at = &t
	}
	out, err := h.uc.Summarize(at)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// IceBalance godoc
// @Summary      Bolsas de hielo pendientes de devolver
// @Tags         records
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IceBalanceResponse
// @Router       /api/records/ice-balance [get]
func (h *LedgerHandler) IceBalance(c *fiber.Ctx) error {
	out, err := h.uc.IceBalance()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
