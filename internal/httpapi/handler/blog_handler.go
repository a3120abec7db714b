package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"karkandu/internal/httpapi/middleware"
	"karkandu/internal/httpapi/repository"
	"karkandu/internal/httpapi/service"
)

// BlogHandler serves the public reading surface.
type BlogHandler struct {
	blogService service.BlogService
	likeService service.LikeService
}

func NewBlogHandler(blogService service.BlogService, likeService service.LikeService) *BlogHandler {
	return &BlogHandler{blogService: blogService, likeService: likeService}
}

func (h *BlogHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/blogs", h.List)
	api.GET("/blogs/featured", h.Featured)
	api.GET("/blogs/:slug", h.GetBySlug)
	api.GET("/likes/:id/status", h.LikeStatus)
}

func (h *BlogHandler) RegisterProtectedRoutes(api *gin.RouterGroup) {
	api.POST("/likes/:id", h.ToggleLike)
}

func (h *BlogHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, 10, 50)
	filters := repository.BlogFilters{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
	}

	resp, err := h.blogService.ListPublished(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

func (h *BlogHandler) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit < 1 || limit > 20 {
		limit = 5
	}

	blogs, err := h.blogService.Featured(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blogs})
}

func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.blogService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blog})
}

func (h *BlogHandler) LikeStatus(c *gin.Context) {
	status, err := h.likeService.Status(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": status})
}

func (h *BlogHandler) ToggleLike(c *gin.Context) {
	result, err := h.likeService.Toggle(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}
