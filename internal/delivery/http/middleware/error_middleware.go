package middleware

import (
	"errors"
	"net/http"

	"recroot-backend/internal/delivery/http/response"
	"recroot-backend/pkg/apperror"
	"recroot-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if len(appErr.Fields) > 0 {
				// Validation failures surface as an array of field messages
				response.Error(c, appErr.Code, appErr.Fields)
				return
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients. Log the actual
		// error server-side and send a generic message.
		logger.Log.Error("unhandled error",
			"error", err, "path", c.Request.URL.Path, "method", c.Request.Method)
		response.Error(c, http.StatusInternalServerError, "Server Error")
	}
}
