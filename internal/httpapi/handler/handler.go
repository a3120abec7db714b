// Package handler holds the gin handlers for the public and admin API. Every
// error response goes through respondError so status codes come from the
// error's kind, never from matching message text.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"karkandu/internal/apperr"
)

func respondError(c *gin.Context, err error) {
	status := apperr.StatusOf(err)
	if status == http.StatusInternalServerError {
		// Surface the real error to the request log only.
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"success": false, "message": apperr.Message(err)})
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body: " + err.Error()})
}

// pageParams reads ?page and ?limit with sane clamps.
func pageParams(c *gin.Context, defaultSize, maxSize int) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultSize)))
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize
}
