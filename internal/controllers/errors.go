package controllers

import (
	"log"

	"github.com/gin-gonic/gin"

	"market-helper-be/internal/apperror"
)

// respondError converts any service error to its HTTP response. Server-side
// failures are logged with their wrapped cause; the response body only ever
// carries the taxonomy code and user-facing message.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	if appErr.StatusCode() >= 500 {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, appErr)
	}
	c.JSON(appErr.StatusCode(), gin.H{
		"code":  appErr.Code.String(),
		"error": appErr.Message,
	})
}
