package api

import (
	"github.com/daon-health/vitalog/internal/db"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ListNotifications(c *fiber.Ctx) error {
	var filters []db.Filter
	if c.QueryBool("unread_only", false) {
		filters = append(filters, db.FieldEquals("is_read", false))
	}

	notifications, err := handler.repos.Notifications.List(
		handler.currentUser(c).ID,
		listOptions(c, "", filters...),
	)
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(notifications)
}

func (handler *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil
	}
	notification, err := handler.repos.Notifications.Update(
		handler.currentUser(c).ID, id, map[string]any{"is_read": true})
	if err != nil {
		return handler.respondRepoError(c, err)
	}
	return c.JSON(notification)
}
