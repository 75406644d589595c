package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/lm-inventario/internal/application/dto"
	"github.com/jhoicas/lm-inventario/internal/application/notification"
)

// NotificationHandler notificaciones del usuario autenticado.
type NotificationHandler struct {
	uc     *notification.UseCase
	logger zerolog.Logger
}

func NewNotificationHandler(uc *notification.UseCase, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, logger: logger}
}

// List godoc
// @Summary      Mis notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "Solo no leídas"
// @Param        limit   query  int   false  "Límite"  default(20)
// @Param        offset  query  int   false  "Offset"  default(0)
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	ctx := c.UserContext()
	list, err := h.uc.ListForUser(ctx, userID, c.QueryBool("unread", false), c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	unread, err := h.uc.UnreadCount(ctx, userID)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.NotificationListResponse{Items: toNotificationList(list), Unread: unread})
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: "Notificación marcada como leída."})
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Success      200  {object}  dto.SuccessResponse
// @Router       /api/notifications/read-all [put]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: fiber.Map{"updated": n}})
}
