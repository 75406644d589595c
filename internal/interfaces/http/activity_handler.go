package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/activity"
)

// ActivityHandler consulta de la bitácora (solo admin).
type ActivityHandler struct {
	uc     *activity.UseCase
	logger zerolog.Logger
}

func NewActivityHandler(uc *activity.UseCase, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{uc: uc, logger: logger}
}

// List godoc
// @Summary      Bitácora de actividad
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        actor      query  string  false  "Email o nombre"
// @Param        action     query  string  false  "Acción, ej. REGISTRAR_MOVIMIENTO"
// @Param        startDate  query  string  false  "YYYY-MM-DD"
// @Param        endDate    query  string  false  "YYYY-MM-DD"
// @Param        limit      query  int     false  "Límite"  default(100)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.ActivityLogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), activity.ListInput{
		Actor:     c.Query("actor"),
		Action:    c.Query("action"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Limit:     c.QueryInt("limit", 100),
		Offset:    c.QueryInt("offset", 0),
	})
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(toActivityList(list))
}
