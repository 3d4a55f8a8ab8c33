package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ErrorResponse is the body of every error answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps service errors to HTTP status codes. Zero means unknown.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden), errors.Is(err, apperrors.ErrAuditSessionExpired):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrShiftAlreadyOpen),
		errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	}
	return 0
}

// errorMessage prefers the message of an AppError over its full wrapped chain.
func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// respondError writes the mapped error, or a 500 with the generic fallback message.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status := statusForError(err)
	if status == 0 {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": errorMessage(err)})
}

// bindingError answers 400 for a request that failed binding or validation.
func bindingError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

// uuidParam returns the named path parameter in canonical form. Anything that
// cannot be a row id answers 404 with notFound.
func uuidParam(c *gin.Context, logger *slog.Logger, name, notFound string) (string, bool) {
	raw := c.Param(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Malformed id in path", slog.String("param", name), slog.String("value", raw))
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return "", false
	}
	return id.String(), true
}
