package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/service"
)

type ContactHandler struct {
	contactService service.ContactService
}

func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/contact", h.Submit)
	api.POST("/subscribe", h.Subscribe)
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var input dto.ContactDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "message received"})
}

func (h *ContactHandler) Subscribe(c *gin.Context) {
	var input dto.SubscribeDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.contactService.Subscribe(c.Request.Context(), input.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "subscribed"})
}
