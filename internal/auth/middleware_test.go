package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testJWTSecret = "test-secret"

type stubResolver struct {
	sessions   map[string]Identity
	users      map[string]Identity
	sessionErr error
}

func (s *stubResolver) ResolveSession(ctx context.Context, token string) (*Identity, error) {
	if s.sessionErr != nil {
		return nil, s.sessionErr
	}
	if identity, ok := s.sessions[token]; ok {
		return &identity, nil
	}
	return nil, errors.New("unknown session")
}

func (s *stubResolver) ResolveUser(ctx context.Context, userID string) (*Identity, error) {
	if identity, ok := s.users[userID]; ok {
		return &identity, nil
	}
	return nil, errors.New("unknown user")
}

func newTestRouter(mw *Middleware) (*gin.Engine, *Identity) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	var seen Identity
	router.GET("/protected", mw.Require(), func(c *gin.Context) {
		identity, _ := IdentityFrom(c.Request.Context())
		seen = identity
		c.Status(http.StatusOK)
	})
	router.GET("/open", mw.Optional(), func(c *gin.Context) {
		identity, _ := IdentityFrom(c.Request.Context())
		seen = identity
		c.Status(http.StatusOK)
	})
	return router, &seen
}

func TestRequireRejectsMissingCredentials(t *testing.T) {
	mw := NewMiddleware(&stubResolver{}, testJWTSecret, "")
	router, _ := newTestRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.Code)
	}
}

func TestRequireAcceptsSessionCookie(t *testing.T) {
	resolver := &stubResolver{sessions: map[string]Identity{
		"tok-1": {UserID: "user-1", Role: RoleCollaborator},
	}}
	mw := NewMiddleware(resolver, testJWTSecret, "")
	router, seen := newTestRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok-1"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}
	if seen.UserID != "user-1" || seen.Role != RoleCollaborator {
		t.Fatalf("unexpected identity: %+v", seen)
	}
}

func TestRequireAcceptsBearerJWT(t *testing.T) {
	resolver := &stubResolver{users: map[string]Identity{
		"user-7": {UserID: "user-7", Role: RoleScientist},
	}}
	mw := NewMiddleware(resolver, testJWTSecret, "")
	router, seen := newTestRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+buildTestToken(t, "user-7", testJWTSecret, nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}
	if seen.UserID != "user-7" || seen.Role != RoleScientist {
		t.Fatalf("unexpected identity: %+v", seen)
	}
}

func TestRequireAcceptsBearerSessionToken(t *testing.T) {
	resolver := &stubResolver{sessions: map[string]Identity{
		"opaque-token": {UserID: "user-2", Role: RoleAdmin},
	}}
	mw := NewMiddleware(resolver, testJWTSecret, "")
	router, seen := newTestRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer opaque-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}
	if seen.UserID != "user-2" {
		t.Fatalf("unexpected identity: %+v", seen)
	}
}

func TestRequireRejectsForgedJWT(t *testing.T) {
	resolver := &stubResolver{users: map[string]Identity{
		"user-7": {UserID: "user-7", Role: RoleScientist},
	}}
	mw := NewMiddleware(resolver, testJWTSecret, "")
	router, _ := newTestRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+buildTestToken(t, "user-7", "wrong-secret", nil))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.Code)
	}
}

func TestRequireEnforcesAudience(t *testing.T) {
	resolver := &stubResolver{users: map[string]Identity{
		"user-7": {UserID: "user-7", Role: RoleScientist},
	}}
	mw := NewMiddleware(resolver, testJWTSecret, "corneal-api")
	router, _ := newTestRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+buildTestToken(t, "user-7", testJWTSecret, []string{"other-api"}))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("wrong audience: expected status %d, got %d", http.StatusUnauthorized, resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+buildTestToken(t, "user-7", testJWTSecret, []string{"corneal-api"}))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("matching audience: expected status %d, got %d", http.StatusOK, resp.Code)
	}
}

type outageError struct{}

func (outageError) Error() string   { return "session store unavailable" }
func (outageError) Retryable() bool { return true }

func TestRequireAnswersServiceUnavailableDuringBackendOutage(t *testing.T) {
	resolver := &stubResolver{sessionErr: outageError{}}
	mw := NewMiddleware(resolver, testJWTSecret, "")
	router, _ := newTestRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok-1"})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	// A valid-looking cookie must not read as rejected while the backend is
	// down; the caller should retry rather than re-authenticate.
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, resp.Code)
	}
}

func TestOptionalPassesAnonymousCallers(t *testing.T) {
	mw := NewMiddleware(&stubResolver{}, testJWTSecret, "")
	router, seen := newTestRouter(mw)

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.Code)
	}
	if seen.UserID != "" {
		t.Fatalf("anonymous request resolved an identity: %+v", seen)
	}
}

func buildTestToken(t *testing.T, subject, secret string, audience []string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  audience,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
