package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/corneal-ai/internal/auth"
	"github.com/example/corneal-ai/internal/logging"
	"github.com/example/corneal-ai/internal/repository"
)

// UserStore defines the persistence operations needed for user
// administration and session handling.
type UserStore interface {
	FindByID(ctx context.Context, id string) (*repository.User, error)
	FindByEmail(ctx context.Context, email string) (*repository.User, error)
	Create(ctx context.Context, user *repository.User) error
	List(ctx context.Context) ([]*repository.User, error)
	TouchLastLogin(ctx context.Context, id string, when time.Time) error
	UpdateRole(ctx context.Context, id, role string) (int64, error)
	CreateSession(ctx context.Context, session *repository.UserSession) error
	FindSessionByToken(ctx context.Context, token string, now time.Time) (*repository.UserSession, error)
	DeleteSessionByToken(ctx context.Context, token string) error
}

// UserUseCase covers the Admin-only user management operations.
type UserUseCase struct {
	users  UserStore
	logger *zap.Logger
}

// NewUserUseCase constructs a new instance.
func NewUserUseCase(users UserStore, logger *zap.Logger) *UserUseCase {
	return &UserUseCase{users: users, logger: logger.Named("user_usecase")}
}

// ListUsers returns all accounts. Admin only.
func (uc *UserUseCase) ListUsers(ctx context.Context, actor auth.Identity) ([]*repository.User, error) {
	if actor.UserID == "" {
		return nil, NewError(KindUnauthenticated, "authentication required")
	}
	if !actor.Role.IsAdmin() {
		return nil, NewError(KindPermissionDenied, "listing users requires the Admin role")
	}

	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, userStoreError("list users", err)
	}
	return users, nil
}

// UpdateUserRole changes a user's role. Admin only; the new role must be one
// of the closed set.
func (uc *UserUseCase) UpdateUserRole(ctx context.Context, actor auth.Identity, targetUserID, newRole string) error {
	if actor.UserID == "" {
		return NewError(KindUnauthenticated, "authentication required")
	}
	if !actor.Role.IsAdmin() {
		return NewError(KindPermissionDenied, "changing roles requires the Admin role")
	}

	role, err := auth.ParseRole(newRole)
	if err != nil {
		return WrapError(KindInvalidRole, "role must be Admin, Collaborator, or Scientist", err)
	}

	affected, err := uc.users.UpdateRole(ctx, targetUserID, string(role))
	if err != nil {
		return userStoreError("update user role", err)
	}
	if affected == 0 {
		// Zero rows means either the user does not exist or the user already
		// holds this role (some drivers report identical-value updates as
		// no-ops). Probe to tell them apart: a missing user is NotFound,
		// re-asserting the current role is an idempotent success.
		if _, err := uc.users.FindByID(ctx, targetUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewError(KindNotFound, "user not found")
			}
			return userStoreError("probe user after role update", err)
		}
	}

	uc.logger.Info("user role updated",
		zap.String("target_user_id", targetUserID),
		zap.String("new_role", string(role)),
		zap.String("changed_by", actor.UserID),
	)
	return nil
}

func userStoreError(message string, err error) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return WrapError(KindNotFound, message, err)
	case repository.IsTransient(err):
		return WrapError(KindUnavailable, message, err)
	default:
		return WrapError(KindInternal, message, logging.NewOperationError("usecase."+message, "", err))
	}
}
