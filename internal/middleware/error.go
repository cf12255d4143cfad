package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finance/internal/errors"
	"finance/internal/logger"
)

var kindStatus = map[apperrors.Kind]int{
	apperrors.KindNotFound:     http.StatusNotFound,
	apperrors.KindForbidden:    http.StatusForbidden,
	apperrors.KindConflict:     http.StatusConflict,
	apperrors.KindBadRequest:   http.StatusBadRequest,
	apperrors.KindUnauthorized: http.StatusUnauthorized,
	apperrors.KindInternal:     http.StatusInternalServerError,
}

// StatusFor maps an error kind to its HTTP status code.
func StatusFor(kind apperrors.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteError writes the JSON error body for err. AppErrors keep their code
// and message; anything else becomes a generic internal error. Internal
// details are logged, never returned.
func WriteError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"message", appErr.Message,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(StatusFor(appErr.Kind), gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		WriteError(c, c.Errors.Last().Err)
	}
}
