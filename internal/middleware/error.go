package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/service"
	"github.com/pageza/recipebox/backend/internal/types"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusFor maps an error returned by a handler to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrTitleRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal details of server-side failures.
func publicMessage(status int, err error) string {
	switch {
	case errors.Is(err, service.ErrReadFailed):
		return "failed to load recipes, please try again"
	case errors.Is(err, service.ErrPersistence):
		return "failed to save recipes, please try again"
	case status >= http.StatusInternalServerError:
		return "internal server error"
	}
	return err.Error()
}

// ErrorHandler renders the last error attached with c.Error as a JSON body
// and turns panics into a 500 response.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("Recovered from panic", "panic", rec, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
			}
		}()

		c.Next()

		last := c.Errors.Last()
		if last == nil || c.Writer.Written() {
			return
		}

		status := StatusFor(last.Err)
		if last.IsType(gin.ErrorTypeBind) {
			status = http.StatusBadRequest
		}
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", "error", last.Err, "path", c.Request.URL.Path)
		}
		c.JSON(status, ErrorResponse{Error: publicMessage(status, last.Err)})
	}
}
