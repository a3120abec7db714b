package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/middleware"
	"karkandu/internal/httpapi/service"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/comments/:id", h.ListByBlog)
}

func (h *CommentHandler) RegisterProtectedRoutes(api *gin.RouterGroup) {
	api.POST("/comments", h.Add)
	api.POST("/comments/:id/reply", h.Reply)
	api.POST("/comments/:id/like", h.ToggleLike)
	api.DELETE("/comments/:id", h.Delete)
}

// ListByBlog is public; a signed-in viewer additionally gets isLiked flags.
func (h *CommentHandler) ListByBlog(c *gin.Context) {
	page, pageSize := pageParams(c, 10, 50)

	resp, err := h.commentService.ListByBlog(c.Request.Context(), c.Param("id"), middleware.UserID(c), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

func (h *CommentHandler) Add(c *gin.Context) {
	var input dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.commentService.Add(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment})
}

func (h *CommentHandler) Reply(c *gin.Context) {
	var input dto.ReplyCommentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.commentService.Reply(c.Request.Context(), c.Param("id"), middleware.UserID(c), input.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment})
}

func (h *CommentHandler) ToggleLike(c *gin.Context) {
	result, err := h.commentService.ToggleLike(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	err := h.commentService.Delete(c.Request.Context(), c.Param("id"), middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "comment deleted"})
}
