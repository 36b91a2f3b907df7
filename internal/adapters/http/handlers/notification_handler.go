package handlers

import (
	"smartchama/internal/adapters/persistence/repositories"
	"smartchama/internal/core/domain"
	"smartchama/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notifications repositories.NotificationRepository
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListByUser returns the user's notifications, newest first
// @Summary List user notifications
// @Tags Notifications
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} domain.Notification
// @Failure 500 {object} response.Message
// @Router /notifications/{userId} [get]
func (h *NotificationHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user id")
	}

	notifications, err := h.notifications.ListByUser(c.Context(), userID)
	if err != nil {
		return handleError(c, err)
	}
	return response.JSON(c, notifications)
}

// Create creates a notification
// @Summary Create notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param body body domain.InsertNotification true "Notification data"
// @Success 201 {object} domain.Notification
// @Failure 400 {object} response.Message
// @Router /notifications [post]
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	var req domain.InsertNotification
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return response.BadRequest(c, "Invalid notification data")
	}

	notification, err := h.notifications.Create(c.Context(), &req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, notification)
}

// MarkRead marks a notification as read
// @Summary Mark notification read
// @Tags Notifications
// @Param id path int true "Notification ID"
// @Success 204
// @Failure 404 {object} response.Message
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	marked, err := h.notifications.MarkRead(c.Context(), id)
	if err != nil {
		return handleError(c, err)
	}
	if !marked {
		return response.NotFound(c, "Notification not found")
	}
	return response.NoContent(c)
}
