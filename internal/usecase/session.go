package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/corneal-ai/internal/auth"
	"github.com/example/corneal-ai/internal/repository"
)

const sessionCacheTTL = 5 * time.Minute

// SessionUseCase handles login, logout, and credential resolution. It
// implements auth.IdentityResolver for the HTTP middleware.
type SessionUseCase struct {
	users      UserStore
	cache      Cache
	provider   auth.Provider
	logger     *zap.Logger
	sessionTTL time.Duration
}

// NewSessionUseCase constructs a new instance.
func NewSessionUseCase(users UserStore, cache Cache, provider auth.Provider, logger *zap.Logger, sessionTTL time.Duration) *SessionUseCase {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &SessionUseCase{
		users:      users,
		cache:      cache,
		provider:   provider,
		logger:     logger.Named("session_usecase"),
		sessionTTL: sessionTTL,
	}
}

// LoginResult is returned on a successful identity-provider exchange.
type LoginResult struct {
	User         *repository.User
	SessionToken string
	ExpiresAt    time.Time
}

// Login exchanges a provider session id for a local user and session.
// Unknown emails are provisioned as Collaborators.
func (uc *SessionUseCase) Login(ctx context.Context, providerSessionID string) (*LoginResult, error) {
	if uc.provider == nil {
		return nil, NewError(KindUnavailable, "no identity provider configured")
	}

	data, err := uc.provider.FetchSession(ctx, providerSessionID)
	if err != nil {
		return nil, WrapError(KindUnauthenticated, "identity provider rejected the session", err)
	}

	now := time.Now().UTC()
	user, err := uc.users.FindByEmail(ctx, data.Email)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = &repository.User{
			ID:        uuid.NewString(),
			Email:     data.Email,
			Name:      data.Name,
			Picture:   data.Picture,
			Role:      string(auth.DefaultRole),
			CreatedAt: now,
		}
		if err := uc.users.Create(ctx, user); err != nil {
			return nil, userStoreError("provision user", err)
		}
		uc.logger.Info("provisioned new user", zap.String("user_id", user.ID))
	case err != nil:
		return nil, userStoreError("look up user", err)
	default:
		if err := uc.users.TouchLastLogin(ctx, user.ID, now); err != nil {
			uc.logger.Warn("failed to stamp last login", zap.Error(err), zap.String("user_id", user.ID))
		}
	}

	session := &repository.UserSession{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		SessionToken: data.SessionToken,
		ExpiresAt:    now.Add(uc.sessionTTL),
		CreatedAt:    now,
	}
	if err := uc.users.CreateSession(ctx, session); err != nil {
		return nil, userStoreError("create session", err)
	}

	uc.cacheIdentity(ctx, session.SessionToken, auth.Identity{UserID: user.ID, Role: auth.Role(user.Role)})

	return &LoginResult{
		User:         user,
		SessionToken: session.SessionToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// Logout drops the session everywhere. Unknown tokens are a no-op.
func (uc *SessionUseCase) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := uc.cache.Del(ctx, sessionCacheKey(sessionToken)); err != nil {
		uc.logger.Warn("failed to drop cached session", zap.Error(err))
	}
	if err := uc.users.DeleteSessionByToken(ctx, sessionToken); err != nil {
		return userStoreError("delete session", err)
	}
	return nil
}

// CurrentUser loads the full account backing an identity.
func (uc *SessionUseCase) CurrentUser(ctx context.Context, actor auth.Identity) (*repository.User, error) {
	if actor.UserID == "" {
		return nil, NewError(KindUnauthenticated, "authentication required")
	}
	user, err := uc.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, userStoreError("load current user", err)
	}
	return user, nil
}

// ResolveSession implements auth.IdentityResolver for opaque session tokens.
func (uc *SessionUseCase) ResolveSession(ctx context.Context, token string) (*auth.Identity, error) {
	if cached, err := uc.cache.Get(ctx, sessionCacheKey(token)); err == nil {
		var identity auth.Identity
		if err := json.Unmarshal([]byte(cached), &identity); err == nil && identity.UserID != "" {
			return &identity, nil
		}
	}

	session, err := uc.users.FindSessionByToken(ctx, token, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, WrapError(KindUnauthenticated, "session unknown or expired", err)
		}
		// A store failure says nothing about the credential; surface it as
		// the retryable kind instead of rejecting the session.
		return nil, userStoreError("load session", err)
	}

	identity, err := uc.ResolveUser(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	uc.cacheIdentity(ctx, token, *identity)
	return identity, nil
}

// ResolveUser implements auth.IdentityResolver for JWT subjects.
func (uc *SessionUseCase) ResolveUser(ctx context.Context, userID string) (*auth.Identity, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, WrapError(KindUnauthenticated, "unknown user", err)
		}
		return nil, userStoreError("load user", err)
	}
	role, err := auth.ParseRole(user.Role)
	if err != nil {
		// A bad stored role should fail closed rather than grant anything.
		return nil, WrapError(KindUnauthenticated, "user has an unrecognized role", err)
	}
	return &auth.Identity{UserID: user.ID, Role: role}, nil
}

func (uc *SessionUseCase) cacheIdentity(ctx context.Context, token string, identity auth.Identity) {
	serialized, err := json.Marshal(identity)
	if err != nil {
		return
	}
	if err := uc.cache.Set(ctx, sessionCacheKey(token), string(serialized), sessionCacheTTL); err != nil {
		uc.logger.Warn("failed to cache session identity", zap.Error(err))
	}
}

func sessionCacheKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}
