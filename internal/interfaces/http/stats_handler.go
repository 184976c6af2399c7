package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almacen-dev/almacen-api/internal/application/dto"
	"github.com/almacen-dev/almacen-api/internal/application/usecase"
)

// StatsHandler estadísticas por área.
type StatsHandler struct {
	uc *usecase.StatsUseCase
}

// NewStatsHandler construye el handler.
func NewStatsHandler(uc *usecase.StatsUseCase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

// Statistics godoc
// @Summary      Estadísticas por área y productos en stock bajo
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/statistics [get]
func (h *StatsHandler) Statistics(c *fiber.Ctx) error {
	out, err := h.uc.Statistics(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out))
}
