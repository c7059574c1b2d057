// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"twinstagram/internal/models"
	"twinstagram/internal/policy"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for comments and
// sub-comments. As with posts, authorization-bearing lookups carry their
// predicate inside the query.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// GetOwned resolves a comment only when authorID wrote it.
	GetOwned(ctx context.Context, id, authorID uint) (*models.Comment, error)
	// GetDeletable resolves a top-level comment when the caller is its
	// author or owns the parent post.
	GetDeletable(ctx context.Context, id, callerID uint) (*models.Comment, error)
	// GetMainVisible resolves a top-level comment the viewer may read.
	GetMainVisible(ctx context.Context, id, viewerID uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error)
	ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	// DeleteWithReplies removes a top-level comment and all of its
	// sub-comments atomically: children first, then the parent, in one
	// transaction.
	DeleteWithReplies(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found!")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) GetOwned(ctx context.Context, id, authorID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Where("comments.user_id = ?", authorID).
		First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found!")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) GetDeletable(ctx context.Context, id, callerID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Where(
			"comments.user_id = ? OR EXISTS (SELECT 1 FROM posts WHERE posts.id = comments.post_id AND posts.user_id = ? AND posts.deleted_at IS NULL)",
			callerID, callerID,
		).
		First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found!")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) GetMainVisible(ctx context.Context, id, viewerID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).
		Scopes(policy.CommentVisible(viewerID)).
		Where("comments.replied_to_comment_id IS NULL").
		First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment not found!")
		}
		return nil, models.NewInternalError(err)
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND replied_to_comment_id IS NULL", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("replied_to_comment_id = ?", commentID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Save(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) DeleteWithReplies(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("replied_to_comment_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
