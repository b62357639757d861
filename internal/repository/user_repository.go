package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepository provides persistence APIs for users and their sessions.
type UserRepository struct {
	db *gorm.DB
	retrier
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, retrier: newRetrier(logger.Named("user_repository"))}
}

// AutoMigrate ensures the schema is available.
func (r *UserRepository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&User{}, &UserSession{})
}

// FindByID retrieves a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.executeWithRetry(ctx, "repository.find_user", id, func() error {
		return r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail retrieves a user by email, or gorm.ErrRecordNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.executeWithRetry(ctx, "repository.find_user_by_email", "", func() error {
		return r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *User) error {
	return r.executeWithRetry(ctx, "repository.create_user", user.ID, func() error {
		return r.db.WithContext(ctx).Create(user).Error
	})
}

// List returns all users, newest first.
func (r *UserRepository) List(ctx context.Context) ([]*User, error) {
	var users []*User
	err := r.executeWithRetry(ctx, "repository.list_users", "", func() error {
		return r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

// TouchLastLogin stamps the user's most recent login.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, when time.Time) error {
	return r.executeWithRetry(ctx, "repository.touch_last_login", id, func() error {
		return r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("last_login", when).Error
	})
}

// UpdateRole changes a user's role and reports how many rows were touched,
// so callers can tell an unknown user from a successful change.
func (r *UserRepository) UpdateRole(ctx context.Context, id, role string) (int64, error) {
	var affected int64
	err := r.executeWithRetry(ctx, "repository.update_role", id, func() error {
		tx := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Update("role", role)
		affected = tx.RowsAffected
		return tx.Error
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

// CreateSession persists a new session binding.
func (r *UserRepository) CreateSession(ctx context.Context, session *UserSession) error {
	return r.executeWithRetry(ctx, "repository.create_session", session.ID, func() error {
		return r.db.WithContext(ctx).Create(session).Error
	})
}

// FindSessionByToken retrieves a live (unexpired) session for the token.
func (r *UserRepository) FindSessionByToken(ctx context.Context, token string, now time.Time) (*UserSession, error) {
	var session UserSession
	err := r.executeWithRetry(ctx, "repository.find_session", "", func() error {
		return r.db.WithContext(ctx).
			First(&session, "session_token = ? AND expires_at > ?", token, now).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSessionByToken removes a session; deleting an unknown token is not
// an error.
func (r *UserRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	return r.executeWithRetry(ctx, "repository.delete_session", "", func() error {
		err := r.db.WithContext(ctx).Delete(&UserSession{}, "session_token = ?", token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	})
}
