package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/dental_clinic_app/internal/apperrors"
	"github.com/SscSPs/dental_clinic_app/internal/core/domain"
	"github.com/SscSPs/dental_clinic_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

type mockAuditGate struct {
	mock.Mock
}

func (m *mockAuditGate) ActiveSession(ctx context.Context, auditorID string) (*domain.AuditSession, error) {
	args := m.Called(ctx, auditorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditSession), args.Error(1)
}

func (m *mockAuditGate) RecordAccess(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func sessionFor(userID string, role domain.Role) *domain.Session {
	return &domain.Session{
		TokenID:   "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
		Profile:   domain.Profile{UserID: userID, Role: role, IsActive: true},
	}
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.GET("/protected", append(handlers, ok)...)
	r.POST("/protected", append(handlers, ok)...)
	return r
}

func serve(r *gin.Engine, method, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["error"].(string)
	return msg
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		auth := new(mockAuthenticator)
		w := serve(newRouter(middleware.AuthMiddleware(auth)), http.MethodGet, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authorization header required", errorBody(t, w))
		auth.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything)
	})

	t.Run("expired token", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").
			Return(nil, errors.Join(apperrors.ErrUnauthorized, jwt.ErrTokenExpired))
		w := serve(newRouter(middleware.AuthMiddleware(auth)), http.MethodGet, "tok")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Token has expired", errorBody(t, w))
	})

	t.Run("revoked token", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").Return(nil, apperrors.ErrUnauthorized)
		w := serve(newRouter(middleware.AuthMiddleware(auth)), http.MethodGet, "tok")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid token", errorBody(t, w))
	})

	t.Run("store failure", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").Return(nil, errors.New("connection refused"))
		w := serve(newRouter(middleware.AuthMiddleware(auth)), http.MethodGet, "tok")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("valid token stores session", func(t *testing.T) {
		auth := new(mockAuthenticator)
		auth.On("Authenticate", mock.Anything, "tok").Return(sessionFor("user-1", domain.RoleCashier), nil)
		var seen string
		probe := func(c *gin.Context) {
			seen, _ = middleware.GetUserIDFromContext(c)
			c.Next()
		}
		w := serve(newRouter(middleware.AuthMiddleware(auth), probe), http.MethodGet, "tok")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-1", seen)
	})
}

func withSession(s *domain.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(middleware.WithSession(c.Request.Context(), s))
		c.Next()
	}
}

func TestRequireRoles(t *testing.T) {
	r := newRouter(withSession(sessionFor("u", domain.RoleCashier)), middleware.RequireRoles(domain.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "").Code)

	r = newRouter(withSession(sessionFor("u", domain.RoleAdmin)), middleware.RequireRoles(domain.RoleAdmin))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
}

func TestAuditorGate(t *testing.T) {
	active := &domain.AuditSession{AuditSessionID: "as-1", AuditorID: "aud-1"}

	t.Run("non auditors pass through", func(t *testing.T) {
		gate := new(mockAuditGate)
		r := newRouter(withSession(sessionFor("u", domain.RoleAdmin)), middleware.AuditorGate(gate))
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "").Code)
		gate.AssertNotCalled(t, "ActiveSession", mock.Anything, mock.Anything)
	})

	t.Run("expired session is forbidden", func(t *testing.T) {
		gate := new(mockAuditGate)
		gate.On("ActiveSession", mock.Anything, "aud-1").Return(nil, apperrors.ErrAuditSessionExpired)
		r := newRouter(withSession(sessionFor("aud-1", domain.RoleAuditor)), middleware.AuditorGate(gate))
		w := serve(r, http.MethodGet, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Audit session expired", errorBody(t, w))
		gate.AssertNotCalled(t, "RecordAccess", mock.Anything, mock.Anything)
	})

	t.Run("writes are forbidden", func(t *testing.T) {
		gate := new(mockAuditGate)
		gate.On("ActiveSession", mock.Anything, "aud-1").Return(active, nil)
		r := newRouter(withSession(sessionFor("aud-1", domain.RoleAuditor)), middleware.AuditorGate(gate))
		w := serve(r, http.MethodPost, "")
		assert.Equal(t, http.StatusForbidden, w.Code)
		gate.AssertNotCalled(t, "RecordAccess", mock.Anything, mock.Anything)
	})

	t.Run("reads are logged", func(t *testing.T) {
		gate := new(mockAuditGate)
		gate.On("ActiveSession", mock.Anything, "aud-1").Return(active, nil)
		gate.On("RecordAccess", mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
			return l.AuditSessionID == "as-1" && l.Method == http.MethodGet && l.Path == "/protected" && l.Status == http.StatusOK
		})).Return(nil)
		r := newRouter(withSession(sessionFor("aud-1", domain.RoleAuditor)), middleware.AuditorGate(gate))
		assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
		gate.AssertExpectations(t)
	})
}

func TestConfigGuard(t *testing.T) {
	r := newRouter(middleware.ConfigGuard([]string{"PGSQL_URL"}))
	w := serve(r, http.MethodGet, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "configuration error", errorBody(t, w))

	r = newRouter(middleware.ConfigGuard(nil))
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "").Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := middleware.NewMemoryLimiter("2-M")
	require.NoError(t, err)
	r := newRouter(middleware.RateLimit(lim))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "").Code)

	_, err = middleware.NewMemoryLimiter("lots")
	assert.Error(t, err)
}

func TestStructuredLoggingMiddleware_RequestID(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := newRouter(middleware.StructuredLoggingMiddleware(logger))

	w := serve(r, http.MethodGet, "")
	_, err := uuid.Parse(w.Header().Get("X-Request-ID"))
	assert.NoError(t, err)

	upstream := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Request-ID", upstream)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, upstream, w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-Request-ID", "not a uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not a uuid", w.Header().Get("X-Request-ID"))
}
