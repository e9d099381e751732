package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harisha-viswa/hiring-system/internal/delivery/http/response"
	"github.com/harisha-viswa/hiring-system/pkg/apperror"
	"github.com/harisha-viswa/hiring-system/pkg/logger"
)

// ErrorHandler maps errors attached to the gin context onto the response
// envelope. AppErrors carry their own status code and kind; anything else is
// logged server-side and surfaced as a generic 500 so internals never leak
// to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindInternal {
				logger.Log.Error("internal error", "error", appErr.Err, "path", c.Request.URL.Path)
			}
			response.Error(c, appErr.Code, appErr.Message, gin.H{"kind": appErr.Kind})
			return
		}

		logger.Log.Error("unhandled error", "error", err, "path", c.Request.URL.Path)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
