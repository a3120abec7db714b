package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/middleware"
	"karkandu/internal/httpapi/service"
)

type InteractionHandler struct {
	interactionService service.InteractionService
}

func NewInteractionHandler(interactionService service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

func (h *InteractionHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/interactions", h.Track)
}

// Track logs one engagement event. Guests are welcome; the route sits behind
// OptionalAuth and the per-IP rate limit.
func (h *InteractionHandler) Track(c *gin.Context) {
	var input dto.TrackInteractionDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	if err := h.interactionService.Track(c.Request.Context(), middleware.UserID(c), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "interaction recorded"})
}
