// Package httpapi assembles the gin router from the handlers. Public reads
// live under /api/user with optional sessions; everything under /api/admin
// requires an admin session.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"karkandu/internal/config"
	"karkandu/internal/httpapi/handler"
	"karkandu/internal/httpapi/middleware"
	"karkandu/internal/httpapi/service"
)

// Interaction tracking is guest-writable, so it gets its own throttle.
const (
	trackRatePerSecond = 5
	trackBurst         = 10
)

type Handlers struct {
	Auth         *handler.AuthHandler
	Blog         *handler.BlogHandler
	Comment      *handler.CommentHandler
	Interaction  *handler.InteractionHandler
	Notification *handler.NotificationHandler
	Contact      *handler.ContactHandler
	Admin        *handler.AdminHandler
}

func SetupRouter(cfg *config.Config, authService service.AuthService, h Handlers) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public surface. OptionalAuth resolves the viewer for isLiked flags and
	// interaction attribution without requiring a session.
	user := router.Group("/api/user")
	user.Use(middleware.OptionalAuth(authService))
	{
		h.Auth.RegisterRoutes(user)
		h.Blog.RegisterRoutes(user)
		h.Comment.RegisterRoutes(user)
		h.Contact.RegisterRoutes(user)

		tracked := user.Group("")
		tracked.Use(middleware.RateLimit(trackRatePerSecond, trackBurst))
		h.Interaction.RegisterRoutes(tracked)
	}

	// Signed-in surface.
	protected := router.Group("/api/user")
	protected.Use(middleware.RequireAuth(authService))
	{
		h.Auth.RegisterProtectedRoutes(protected)
		h.Blog.RegisterProtectedRoutes(protected)
		h.Comment.RegisterProtectedRoutes(protected)
		h.Notification.RegisterProtectedRoutes(protected)
	}

	// Admin surface.
	admin := router.Group("/api/admin")
	admin.Use(middleware.RequireAuth(authService), middleware.RequireAdmin())
	{
		h.Admin.RegisterRoutes(admin)
	}

	return router
}
