package service

import (
	"context"
	"testing"

	"twinstagram/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestCommentServiceCreateOnInvisiblePost(t *testing.T) {
	posts := noopPostRepo()
	posts.getVisibleByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post not found!")
	}

	svc := NewCommentService(noopCommentRepo(), posts)
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 5, Content: "nice",
	})
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestCommentServiceCreateEmptyContent(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 5,
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestCommentServiceReplyToReply(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 7, PostID: 5, RepliedToCommentID: uintPtr(3)}, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 5, Content: "deep thread", RepliedToCommentID: uintPtr(7),
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestCommentServiceReplyWrongPost(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 7, PostID: 6}, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 5, Content: "wrong thread", RepliedToCommentID: uintPtr(7),
	})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestCommentServiceCreateReply(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 7, PostID: 5}, nil
	}
	var created *models.Comment
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 9
		created = c
		return nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	_, err := svc.CreateComment(context.Background(), CreateCommentInput{
		UserID: 1, PostID: 5, Content: "agreed", RepliedToCommentID: uintPtr(7),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil || created.RepliedToCommentID == nil || *created.RepliedToCommentID != 7 {
		t.Fatalf("expected reply linked to parent 7, got %#v", created)
	}
}

func TestCommentServiceUpdateNotAuthor(t *testing.T) {
	comments := noopCommentRepo()
	comments.getOwnedFn = func(context.Context, uint, uint) (*models.Comment, error) {
		return nil, models.NewNotFoundError("Comment not found!")
	}

	svc := NewCommentService(comments, noopPostRepo())
	_, err := svc.UpdateComment(context.Background(), 2, 7, "edited")
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestCommentServiceDeleteCascades(t *testing.T) {
	comments := noopCommentRepo()
	comments.getDeletableFn = func(context.Context, uint, uint) (*models.Comment, error) {
		return &models.Comment{ID: 7, PostID: 5}, nil
	}
	cascaded := false
	comments.deleteWithRepliesFn = func(context.Context, uint) error {
		cascaded = true
		return nil
	}
	comments.deleteFn = func(context.Context, uint) error {
		t.Fatal("top-level delete must cascade")
		return nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	if err := svc.DeleteComment(context.Background(), 1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cascaded {
		t.Fatal("expected cascading delete for top-level comment")
	}
}

func TestCommentServiceDeleteReplyPlain(t *testing.T) {
	comments := noopCommentRepo()
	comments.getDeletableFn = func(context.Context, uint, uint) (*models.Comment, error) {
		return &models.Comment{ID: 9, PostID: 5, RepliedToCommentID: uintPtr(7)}, nil
	}
	plain := false
	comments.deleteFn = func(context.Context, uint) error {
		plain = true
		return nil
	}
	comments.deleteWithRepliesFn = func(context.Context, uint) error {
		t.Fatal("reply delete must not cascade")
		return nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	if err := svc.DeleteComment(context.Background(), 1, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !plain {
		t.Fatal("expected plain delete for reply")
	}
}

func TestCommentServiceRepliesGatedByMainComment(t *testing.T) {
	comments := noopCommentRepo()
	comments.getMainVisibleFn = func(context.Context, uint, uint) (*models.Comment, error) {
		return nil, models.NewNotFoundError("Comment not found!")
	}

	svc := NewCommentService(comments, noopPostRepo())
	_, err := svc.GetReplies(context.Background(), 1, 7)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestCommentServicePostCommentsGatedByPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getVisibleByIDFn = func(context.Context, uint, uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post not found!")
	}

	svc := NewCommentService(noopCommentRepo(), posts)
	_, err := svc.GetPostComments(context.Background(), 1, 5)
	assertAppErrorCode(t, err, "NOT_FOUND")
}
