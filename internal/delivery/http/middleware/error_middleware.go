package middleware

import (
	"errors"
	"net/http"
	"strings"

	"balkan-spine-wellness/internal/delivery/http/response"
	"balkan-spine-wellness/pkg/apperror"
	"balkan-spine-wellness/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorTemplate is rendered for page requests that fail
const ErrorTemplate = "error.html"

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// SECURITY: never expose internal error details to clients
			appErr = apperror.New(http.StatusInternalServerError, "A apărut o eroare neașteptată. Te rugăm să încerci din nou.", err)
		}
		if appErr.Code >= http.StatusInternalServerError {
			logger.Log.Error("Request failed",
				"path", c.Request.URL.Path,
				"request_id", c.GetString("RequestID"),
				"error", err,
			)
		}

		if c.Writer.Written() {
			return
		}
		if wantsHTML(c) {
			c.HTML(appErr.Code, ErrorTemplate, gin.H{
				"Code":    appErr.Code,
				"Message": appErr.Message,
			})
			return
		}
		response.Error(c, appErr.Code, appErr.Message, appErr.Details)
	}
}

// wantsHTML is true for browser page requests; the /v1 API always gets JSON.
func wantsHTML(c *gin.Context) bool {
	if strings.HasPrefix(c.Request.URL.Path, "/v1/") {
		return false
	}
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}
