package service

import (
	"context"

	"github.com/google/uuid"

	"twinstagram/internal/models"
	"twinstagram/internal/repository"
	"twinstagram/internal/storage"
	"twinstagram/internal/validation"
)

// Feed pagination defaults. Invalid page/limit values fall back here instead
// of erroring.
const (
	DefaultFeedPage  = 1
	DefaultFeedLimit = 20
)

// PostService provides post business logic: creation with image upload,
// owner-scoped edits, visibility-scoped reads, the feed and the like toggle.
type PostService struct {
	postRepo repository.PostRepository
	store    storage.ObjectStore
}

// CreatePostInput carries a new post's caption and optional image bytes.
type CreatePostInput struct {
	UserID           uint
	Content          string
	Image            []byte
	ImageContentType string
}

// FeedPage is one page of the home feed.
type FeedPage struct {
	Posts      []*models.Post `json:"posts"`
	TotalCount int64          `json:"totalCount"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, store storage.ObjectStore) *PostService {
	return &PostService{postRepo: postRepo, store: store}
}

// CreatePost stores the optional image and creates the post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Content == "" && len(in.Image) == 0 {
		return nil, models.NewValidationError("Post needs content or an image")
	}
	if err := validation.ValidatePostContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		UserID:  in.UserID,
		Content: in.Content,
	}

	if len(in.Image) > 0 {
		imageID := uuid.NewString()
		url, err := s.store.Upload(ctx, storage.PostImageKey(imageID), in.ImageContentType, in.Image)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.Image = url
		post.ImageID = imageID
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits a post's caption. Non-owners see the post as missing.
func (s *PostService) UpdatePost(ctx context.Context, userID, postID uint, content string) (*models.Post, error) {
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post, err := s.postRepo.GetOwned(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and its stored image. Non-owners see it as
// missing.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetOwned(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post.ID); err != nil {
		return err
	}

	if post.ImageID != "" {
		if err := s.store.Remove(ctx, storage.PostImageKey(post.ImageID)); err != nil {
			return models.NewInternalError(err)
		}
	}
	return nil
}

// GetPost returns a post the viewer is allowed to see.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	return s.postRepo.GetVisibleByID(ctx, postID, viewerID)
}

// GetMyPosts lists the caller's own posts, newest first.
func (s *PostService) GetMyPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.ListByUser(ctx, userID)
}

// GetFeed returns a page of posts by followed or public authors, excluding
// the caller's own. page and limit below 1 fall back to the defaults.
func (s *PostService) GetFeed(ctx context.Context, viewerID uint, page, limit int) (*FeedPage, error) {
	if page < 1 {
		page = DefaultFeedPage
	}
	if limit < 1 {
		limit = DefaultFeedLimit
	}

	posts, total, err := s.postRepo.Feed(ctx, viewerID, page, limit)
	if err != nil {
		return nil, err
	}
	return &FeedPage{Posts: posts, TotalCount: total, Page: page, Limit: limit}, nil
}

// ToggleLike flips the caller's like on a visible post and returns the post
// with fresh counts. Liking an already-liked post unlikes it.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetVisibleByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.ToggleLike(ctx, userID, postID); err != nil {
		return nil, err
	}

	return s.postRepo.GetVisibleByID(ctx, postID, userID)
}
