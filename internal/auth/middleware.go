package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie is the cookie carrying the opaque session token.
const SessionCookie = "session_token"

type contextKey string

const identityKey contextKey = "authIdentity"

// IdentityFrom retrieves the authenticated actor from context.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	if value, ok := ctx.Value(identityKey).(Identity); ok && value.UserID != "" {
		return value, true
	}
	return Identity{}, false
}

// WithIdentity returns a context carrying the actor. Exposed for tests.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityResolver turns a credential into an authenticated actor.
type IdentityResolver interface {
	// ResolveSession maps an opaque session token to its owner.
	ResolveSession(ctx context.Context, token string) (*Identity, error)
	// ResolveUser maps a user id taken from a verified JWT to an actor.
	ResolveUser(ctx context.Context, userID string) (*Identity, error)
}

// Middleware authenticates requests from either a session cookie or an
// Authorization bearer value. A bearer value may be an opaque session token
// or an HS256 JWT whose subject is the user id.
type Middleware struct {
	resolver IdentityResolver
	secret   string
	audience string
}

// NewMiddleware builds the middleware around a resolver.
func NewMiddleware(resolver IdentityResolver, secret, audience string) *Middleware {
	return &Middleware{
		resolver: resolver,
		secret:   strings.TrimSpace(secret),
		audience: strings.TrimSpace(audience),
	}
}

// Require aborts with 401 when no credential resolves to an identity, or
// with 503 when the resolver's backing store is down. An outage says nothing
// about the credential, so it must not read as a rejection.
func (m *Middleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.authenticate(c)
		if err != nil {
			if isRetryable(err) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication backend unavailable"})
				return
			}
			unauthorized(c, "authentication required")
			return
		}
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// Optional resolves the identity when a credential is present but never
// rejects the request. Handlers decide what an anonymous caller may see.
func (m *Middleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := m.authenticate(c); err == nil {
			c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		}
		c.Next()
	}
}

func (m *Middleware) authenticate(c *gin.Context) (Identity, error) {
	ctx := c.Request.Context()

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		identity, err := m.resolver.ResolveSession(ctx, cookie)
		if err == nil {
			return *identity, nil
		}
		if isRetryable(err) {
			return Identity{}, err
		}
		// The cookie did not resolve; a bearer credential may still.
	}

	token, err := extractBearerToken(c.Request.Header.Get("Authorization"))
	if err != nil {
		return Identity{}, err
	}

	if subject, ok := m.parseJWT(token); ok {
		identity, err := m.resolver.ResolveUser(ctx, subject)
		if err != nil {
			return Identity{}, err
		}
		return *identity, nil
	}

	identity, err := m.resolver.ResolveSession(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	return *identity, nil
}

// isRetryable reports whether a resolver failure is a transient backend
// outage rather than a credential problem.
func isRetryable(err error) bool {
	var r interface{ Retryable() bool }
	return errors.As(err, &r) && r.Retryable()
}

func (m *Middleware) parseJWT(tokenString string) (string, bool) {
	if m.secret == "" || strings.Count(tokenString, ".") != 2 {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	if m.audience != "" && !containsAudience(claims.Audience, m.audience) {
		return "", false
	}
	if claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

func extractBearerToken(header string) (string, error) {
	if header == "" {
		return "", errors.New("authorization header required")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("token missing")
	}
	return token, nil
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

func containsAudience(claims jwt.ClaimStrings, expected string) bool {
	for _, aud := range claims {
		if aud == expected {
			return true
		}
	}
	return false
}
