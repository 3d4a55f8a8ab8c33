package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Now returns the current time. Tests replace it to pin the clinic day.
	Now func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// CurrentTime returns Now() in UTC, falling back to the wall clock.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Authorize returns apperrors.ErrForbidden, logged with the attempted action, unless allowed.
func (s *BaseService) Authorize(ctx context.Context, actor domain.Actor, allowed bool, action string) error {
	if allowed {
		return nil
	}
	s.LogInfo(ctx, "Action not permitted for role",
		slog.String("action", action),
		slog.String("user_id", actor.UserID),
		slog.String("role", string(actor.Role)))
	return apperrors.NewAppError(http.StatusForbidden, "not permitted to "+action, apperrors.ErrForbidden)
}
