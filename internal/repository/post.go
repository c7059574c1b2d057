// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"twinstagram/internal/cache"
	"twinstagram/internal/models"
	"twinstagram/internal/policy"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and likes.
// Read lookups are viewer-scoped: the visibility predicate is part of the
// query, so a denied post is indistinguishable from a missing one.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	// GetVisibleByID resolves a post the viewer may read, or not-found.
	GetVisibleByID(ctx context.Context, id, viewerID uint) (*models.Post, error)
	// GetOwned resolves a post only when ownerID owns it, or not-found.
	GetOwned(ctx context.Context, id, ownerID uint) (*models.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Post, error)
	// Feed lists posts by authors the viewer follows (accepted) or whose
	// profile is PUBLIC, excluding the viewer's own posts, newest first.
	Feed(ctx context.Context, viewerID uint, page, limit int) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	// ToggleLike flips the viewer's membership in the post's like set.
	// Returns true when the post ends up liked. The insert uses
	// ON CONFLICT DO NOTHING so concurrent duplicate likes collapse.
	ToggleLike(ctx context.Context, userID, postID uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds subqueries to fetch counts and liked status in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS liked", viewerID)
	}
	return db.Select(selectQuery + ", false AS liked")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetVisibleByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Scopes(policy.PostVisible(viewerID)).
		Preload("User").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found!")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) GetOwned(ctx context.Context, id, ownerID uint) (*models.Post, error) {
	var post models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), ownerID).
		Where("posts.user_id = ?", ownerID).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post not found!")
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), userID).
		Preload("User").
		Where("posts.user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Feed(ctx context.Context, viewerID uint, page, limit int) ([]*models.Post, int64, error) {
	// The feed predicate is the visibility scope minus the ownership branch:
	// the caller's own posts never appear in their feed.
	feedScope := func(db *gorm.DB) *gorm.DB {
		return db.
			Where("posts.user_id != ?", viewerID).
			Where(
				`EXISTS (SELECT 1 FROM users WHERE users.id = posts.user_id AND users.profile_type = ? AND users.deleted_at IS NULL)
				OR EXISTS (SELECT 1 FROM follows WHERE follows.request_by_id = ? AND follows.request_to_id = posts.user_id AND follows.status = ?)`,
				models.ProfilePublic, viewerID, models.FollowStatusAccepted,
			)
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Scopes(feedScope).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Scopes(feedScope).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

func (r *postRepository) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&models.Like{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected > 0 {
			// Was liked; toggle removed it.
			return nil
		}

		// Not liked yet; the conflict target absorbs a concurrent duplicate.
		if err := tx.Exec(
			`INSERT INTO likes (user_id, post_id, created_at)
			 VALUES (?, ?, NOW())
			 ON CONFLICT (user_id, post_id) DO NOTHING`,
			userID, postID,
		).Error; err != nil {
			return models.NewInternalError(err)
		}
		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}

	cache.InvalidatePost(ctx, postID)
	return liked, nil
}
