package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karkandu/internal/httpapi/middleware"
	"karkandu/internal/httpapi/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) RegisterProtectedRoutes(api *gin.RouterGroup) {
	api.GET("/notifications", h.List)
	api.PUT("/notifications/read-all", h.MarkAllRead)
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, unread, err := h.notificationService.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"notifications": notifications,
			"unreadCount":   unread,
		},
	})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "all notifications marked as read"})
}
