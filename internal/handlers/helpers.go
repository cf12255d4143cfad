package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finance/internal/errors"
	"finance/internal/middleware"
	"finance/internal/models"
	"finance/internal/uuid"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	value, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID parses a UUID path parameter.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
//
//nolint:unparam // param is intentionally generic for reuse across handlers with different path params
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseQueryDate parses an optional YYYY-MM-DD query parameter.
func parseQueryDate(c *gin.Context, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, apperrors.WithMessagef(apperrors.ErrInvalidInput, "%s must be a date in YYYY-MM-DD format", key)
	}
	return &d, nil
}

// invalidInput turns a binding error into an ErrInvalidInput.
func invalidInput(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
}

// respondWithError writes a consistent JSON error response. AppErrors keep
// their code and message and are mapped to a status by kind; anything else
// is logged and returned as a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	middleware.WriteError(c, err)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse represents a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
