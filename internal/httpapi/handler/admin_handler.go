package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/middleware"
	"karkandu/internal/httpapi/repository"
	"karkandu/internal/httpapi/service"
)

// AdminHandler serves the admin panel: authoring, moderation, and the stats
// dashboard. Everything here sits behind RequireAuth + RequireAdmin.
type AdminHandler struct {
	blogService    service.BlogService
	commentService service.CommentService
	statsService   service.StatsService
	contactService service.ContactService
	users          repository.UserRepository
	loginLogs      repository.LoginLogRepository
}

func NewAdminHandler(
	blogService service.BlogService,
	commentService service.CommentService,
	statsService service.StatsService,
	contactService service.ContactService,
	users repository.UserRepository,
	loginLogs repository.LoginLogRepository,
) *AdminHandler {
	return &AdminHandler{
		blogService:    blogService,
		commentService: commentService,
		statsService:   statsService,
		contactService: contactService,
		users:          users,
		loginLogs:      loginLogs,
	}
}

func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/blogs", h.ListBlogs)
	admin.POST("/blogs", h.CreateBlog)
	admin.GET("/blogs/:id", h.GetBlog)
	admin.PUT("/blogs/:id", h.UpdateBlog)
	admin.DELETE("/blogs/:id", h.DeleteBlog)
	admin.PATCH("/blogs/:id/publish", h.TogglePublish)

	admin.GET("/comments", h.ListComments)
	admin.DELETE("/comments/:id", h.HardDeleteComment)

	admin.GET("/stats", h.StatsOverview)
	admin.GET("/stats/blogs", h.StatsPerBlog)
	admin.GET("/stats/blogs/:id", h.StatsForBlog)

	admin.GET("/contacts", h.ListContacts)
	admin.PATCH("/contacts/:id/read", h.MarkContactRead)

	admin.GET("/users", h.ListUsers)
	admin.GET("/logins", h.RecentLogins)
}

func (h *AdminHandler) ListBlogs(c *gin.Context) {
	page, pageSize := pageParams(c, 20, 100)
	resp, err := h.blogService.ListAll(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

func (h *AdminHandler) CreateBlog(c *gin.Context) {
	var input dto.CreateBlogDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	blog, err := h.blogService.Create(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": blog})
}

func (h *AdminHandler) GetBlog(c *gin.Context) {
	blog, err := h.blogService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blog})
}

func (h *AdminHandler) UpdateBlog(c *gin.Context) {
	var input dto.UpdateBlogDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	blog, err := h.blogService.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blog})
}

func (h *AdminHandler) DeleteBlog(c *gin.Context) {
	if err := h.blogService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "blog deleted"})
}

func (h *AdminHandler) TogglePublish(c *gin.Context) {
	var input dto.TogglePublishDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	blog, err := h.blogService.TogglePublish(c.Request.Context(), c.Param("id"), *input.IsPublished)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": blog})
}

// ListComments returns the moderation backlog, deleted comments included.
func (h *AdminHandler) ListComments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	filters := repository.AdminCommentFilters{
		BlogID: c.Query("blogId"),
		UserID: c.Query("userId"),
		Search: c.Query("search"),
	}

	resp, err := h.commentService.ListAdmin(c.Request.Context(), filters, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

func (h *AdminHandler) HardDeleteComment(c *gin.Context) {
	if err := h.commentService.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "comment permanently deleted"})
}

func (h *AdminHandler) StatsOverview(c *gin.Context) {
	overview, err := h.statsService.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": overview})
}

func (h *AdminHandler) StatsPerBlog(c *gin.Context) {
	stats, err := h.statsService.PerBlog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func (h *AdminHandler) StatsForBlog(c *gin.Context) {
	stats, err := h.statsService.ForBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

func (h *AdminHandler) ListContacts(c *gin.Context) {
	page, pageSize := pageParams(c, 20, 100)
	contacts, total, err := h.contactService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"contacts":   contacts,
			"pagination": dto.NewPagination(total, page, pageSize),
		},
	})
}

func (h *AdminHandler) MarkContactRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid contact id"})
		return
	}

	if err := h.contactService.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "contact marked as read"})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, pageSize := pageParams(c, 20, 100)
	users, total, err := h.users.List(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = dto.FromUser(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"users":      responses,
			"pagination": dto.NewPagination(total, page, pageSize),
		},
	})
}

func (h *AdminHandler) RecentLogins(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := h.loginLogs.ListRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}
