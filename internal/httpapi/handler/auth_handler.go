package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"karkandu/internal/httpapi/dto"
	"karkandu/internal/httpapi/middleware"
	"karkandu/internal/httpapi/service"
)

type AuthHandler struct {
	authService service.AuthService
	cookieTTL   time.Duration
	secure      bool
}

func NewAuthHandler(authService service.AuthService, cookieTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTL, secure: secure}
}

func (h *AuthHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
}

func (h *AuthHandler) RegisterProtectedRoutes(api *gin.RouterGroup) {
	api.GET("/me", h.Me)
	api.PUT("/profile", h.UpdateProfile)
}

// setSessionCookie stores the token as an httpOnly cookie; the SPA never
// touches the token from script.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, int(h.cookieTTL.Seconds()), "/", "", h.secure, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": resp})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), input, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": resp})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", h.secure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var input dto.UpdateProfileDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}
