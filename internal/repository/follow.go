// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"twinstagram/internal/models"

	"gorm.io/gorm"
)

// FollowRepository defines persistence operations for directed follow edges.
type FollowRepository interface {
	// Create inserts a new edge. The composite unique index on
	// (request_by_id, request_to_id) closes the check-then-act race between
	// concurrent duplicate requests; a violation surfaces as a conflict.
	Create(ctx context.Context, follow *models.Follow) error
	GetByID(ctx context.Context, id uint) (*models.Follow, error)
	// GetBetween returns the edge by -> to in any status, or nil when absent.
	GetBetween(ctx context.Context, byID, toID uint) (*models.Follow, error)
	// IsFollowing reports whether an accepted edge by -> to exists.
	IsFollowing(ctx context.Context, byID, toID uint) (bool, error)
	Accept(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	// ListFollowers returns accepted edges towards targetID with the
	// requesting user preloaded; ViewerFollows is computed per row so the
	// caller can render its own relationship to each follower.
	ListFollowers(ctx context.Context, targetID, viewerID uint) ([]models.Follow, error)
	// ListFollowings returns accepted edges originating from targetID with
	// the target user of each edge preloaded.
	ListFollowings(ctx context.Context, targetID, viewerID uint) ([]models.Follow, error)
	ListPendingReceived(ctx context.Context, userID uint) ([]models.Follow, error)
	ListPendingSent(ctx context.Context, userID uint) ([]models.Follow, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *models.Follow) error {
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("This follow request already exists!")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) GetByID(ctx context.Context, id uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.WithContext(ctx).
		Preload("RequestBy").
		Preload("RequestTo").
		First(&follow, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Cannot find follow request!")
		}
		return nil, models.NewInternalError(err)
	}
	return &follow, nil
}

func (r *followRepository) GetBetween(ctx context.Context, byID, toID uint) (*models.Follow, error) {
	var follow models.Follow
	if err := r.db.WithContext(ctx).
		Where("request_by_id = ? AND request_to_id = ?", byID, toID).
		First(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // no edge exists
		}
		return nil, models.NewInternalError(err)
	}
	return &follow, nil
}

func (r *followRepository) IsFollowing(ctx context.Context, byID, toID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("request_by_id = ? AND request_to_id = ? AND status = ?",
			byID, toID, models.FollowStatusAccepted).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) Accept(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("id = ?", id).
		Update("status", models.FollowStatusAccepted).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Follow{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) ListFollowers(ctx context.Context, targetID, viewerID uint) ([]models.Follow, error) {
	var follows []models.Follow
	if err := r.db.WithContext(ctx).
		Select("follows.*, EXISTS(SELECT 1 FROM follows vf WHERE vf.request_by_id = ? AND vf.request_to_id = follows.request_by_id AND vf.status = ?) AS viewer_follows",
			viewerID, models.FollowStatusAccepted).
		Where("request_to_id = ? AND status = ?", targetID, models.FollowStatusAccepted).
		Preload("RequestBy").
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}

func (r *followRepository) ListFollowings(ctx context.Context, targetID, viewerID uint) ([]models.Follow, error) {
	var follows []models.Follow
	if err := r.db.WithContext(ctx).
		Select("follows.*, EXISTS(SELECT 1 FROM follows vf WHERE vf.request_by_id = ? AND vf.request_to_id = follows.request_to_id AND vf.status = ?) AS viewer_follows",
			viewerID, models.FollowStatusAccepted).
		Where("request_by_id = ? AND status = ?", targetID, models.FollowStatusAccepted).
		Preload("RequestTo").
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}

func (r *followRepository) ListPendingReceived(ctx context.Context, userID uint) ([]models.Follow, error) {
	var follows []models.Follow
	if err := r.db.WithContext(ctx).
		Where("request_to_id = ? AND status = ?", userID, models.FollowStatusPending).
		Preload("RequestBy").
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}

func (r *followRepository) ListPendingSent(ctx context.Context, userID uint) ([]models.Follow, error) {
	var follows []models.Follow
	if err := r.db.WithContext(ctx).
		Where("request_by_id = ? AND status = ?", userID, models.FollowStatusPending).
		Preload("RequestTo").
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return follows, nil
}
