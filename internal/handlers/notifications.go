package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"campushub/internal/models"
)

// ListNotifications returns the caller's feed, newest first.
// GET /api/notifications
func (h *Handlers) ListNotifications(c *gin.Context) {
	userID, _ := currentUser(c)
	items, err := h.services.Notifications.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []models.Notification{}
	}
	respondOK(c, items)
}

// MarkNotificationRead flags one notification as read.
// PUT /api/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid notification id")
		return
	}

	userID, _ := currentUser(c)
	if err := h.services.Notifications.MarkRead(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	respondMessage(c, "Notification marked as read")
}

// UnreadCount returns the caller's unread notification count.
// GET /api/notifications/unread-count
func (h *Handlers) UnreadCount(c *gin.Context) {
	userID, _ := currentUser(c)
	count, err := h.services.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"count": count})
}
