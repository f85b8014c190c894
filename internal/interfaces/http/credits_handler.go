package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
)

// CreditsHandler maneja el saldo de créditos de IA.
type CreditsHandler struct {
	uc *usecase.CreditsUseCase
}

// NewCreditsHandler construye el handler.
func NewCreditsHandler(uc *usecase.CreditsUseCase) *CreditsHandler {
	return &CreditsHandler{uc: uc}
}

// Balance godoc
// @Summary      Saldo de créditos de IA
// @Tags         credits
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TopUpResponse
// @Router       /api/credits [get]
func (h *CreditsHandler) Balance(c *fiber.Ctx) error {
	credits, err := h.uc.Balance()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.TopUpResponse{Credits: credits})
}

// TopUp godoc
// @Summary      Recargar créditos de IA (solo dueña)
// @Tags         credits
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TopUpResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/credits/topup [post]
func (h *CreditsHandler) TopUp(c *fiber.Ctx) error {
	credits, err := h.uc.TopUp()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.TopUpResponse{Credits: credits})
}
