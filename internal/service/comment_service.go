package service

import (
	"context"

	"twinstagram/internal/models"
	"twinstagram/internal/repository"
	"twinstagram/internal/validation"
)

// CommentService provides comment and sub-comment business logic. Nesting is
// one level deep: a reply can never have replies of its own.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput carries a new comment. RepliedToCommentID set means a
// sub-comment.
type CreateCommentInput struct {
	UserID             uint
	PostID             uint
	Content            string
	RepliedToCommentID *uint
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// CreateComment adds a comment or sub-comment to a post the caller can see.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.postRepo.GetVisibleByID(ctx, in.PostID, in.UserID); err != nil {
		return nil, err
	}

	if in.RepliedToCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.RepliedToCommentID)
		if err != nil {
			return nil, err
		}
		// One level of nesting only.
		if parent.IsReply() {
			return nil, models.NewValidationError("You cannot reply to a sub-comment!")
		}
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("Comment does not belong to this post")
		}
		if _, err := s.commentRepo.GetMainVisible(ctx, parent.ID, in.UserID); err != nil {
			return nil, err
		}
	}

	comment := &models.Comment{
		UserID:             in.UserID,
		PostID:             in.PostID,
		Content:            in.Content,
		RepliedToCommentID: in.RepliedToCommentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// UpdateComment edits a comment's content. Only the author may edit; anyone
// else sees the comment as missing.
func (s *CommentService) UpdateComment(ctx context.Context, userID, commentID uint, content string) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment, err := s.commentRepo.GetOwned(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment. The author may delete their own comment;
// the post owner may also delete comments under their post. Deleting a
// top-level comment removes its replies in the same transaction.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetDeletable(ctx, commentID, userID)
	if err != nil {
		return err
	}

	if comment.IsReply() {
		return s.commentRepo.Delete(ctx, comment.ID)
	}
	return s.commentRepo.DeleteWithReplies(ctx, comment.ID)
}

// GetPostComments lists a visible post's top-level comments, newest first.
func (s *CommentService) GetPostComments(ctx context.Context, viewerID, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetVisibleByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// GetReplies lists a visible main comment's replies, oldest first.
func (s *CommentService) GetReplies(ctx context.Context, viewerID, commentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetMainVisible(ctx, commentID, viewerID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListReplies(ctx, commentID)
}
