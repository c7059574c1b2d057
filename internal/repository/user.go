// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"twinstagram/internal/cache"
	"twinstagram/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// UsernameTaken reports whether another user (id != selfID) already owns
	// the username. Uniqueness is checked before writes and additionally
	// enforced by the unique index.
	UsernameTaken(ctx context.Context, username string, selfID uint) (bool, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// SetProfileType updates the visibility flag. A switch to PUBLIC
	// auto-accepts the backlog of incoming PENDING follow requests in the
	// same transaction, so no PENDING edge towards the user survives the call.
	SetProfileType(ctx context.Context, userID uint, profileType models.ProfileType) (*models.User, error)
	// ListNotFollowedBy returns users the given user does not follow (any
	// edge status counts as "followed"), excluding the user themselves.
	ListNotFollowedBy(ctx context.Context, userID uint) ([]models.User, error)
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// cachedUser is the Redis representation of a user record. models.User
// cannot be cached directly: its json tags drop the password hash, and a
// cache-hit read feeds read-modify-write saves, so round-tripping the model
// through JSON would persist an emptied password column on the next Update.
type cachedUser struct {
	User     models.User `json:"user"`
	Password string      `json:"password"`
}

func (c *cachedUser) toModel() *models.User {
	user := c.User
	user.Password = c.Password
	return &user
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var cu cachedUser
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &cu, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&cu.User, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User not found!")
			}
			return models.NewInternalError(err)
		}
		cu.Password = cu.User.Password
		return nil
	})

	if err != nil {
		return nil, err
	}
	return cu.toModel(), nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string, selfID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? AND id != ?", username, selfID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("This username already exists!")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	// PostgreSQL unique violation SQLSTATE 23505
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("This username already exists!")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) SetProfileType(ctx context.Context, userID uint, profileType models.ProfileType) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User not found!")
			}
			return models.NewInternalError(err)
		}

		wasPrivate := user.ProfileType == models.ProfilePrivate
		user.ProfileType = profileType
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("profile_type", profileType).Error; err != nil {
			return models.NewInternalError(err)
		}

		// Going public clears the request backlog: everyone who was waiting
		// gets auto-accepted, same as a fresh request against a PUBLIC profile.
		if wasPrivate && profileType == models.ProfilePublic {
			if err := tx.Model(&models.Follow{}).
				Where("request_to_id = ? AND status = ?", userID, models.FollowStatusPending).
				Update("status", models.FollowStatusAccepted).Error; err != nil {
				return models.NewInternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateUser(ctx, userID)
	return &user, nil
}

func (r *userRepository) ListNotFollowedBy(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Where("id != ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM follows WHERE follows.request_by_id = ? AND follows.request_to_id = users.id)", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}
