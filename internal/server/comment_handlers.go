package server

import (
	"twinstagram/internal/models"
	"twinstagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/v1/comments/new
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PostID             uint   `json:"postId"`
		Content            string `json:"content"`
		RepliedToCommentID *uint  `json:"repliedToCommentId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("postId is required"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), service.CreateCommentInput{
		UserID:             userID,
		PostID:             req.PostID,
		Content:            req.Content,
		RepliedToCommentID: req.RepliedToCommentID,
	})
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Comment created successfully!",
		"comment": comment,
	})
}

// UpdateComment handles PUT /api/v1/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.Context(), userID, commentID, req.Content)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment updated successfully!",
		"comment": comment,
	})
}

// DeleteComment handles DELETE /api/v1/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), userID, commentID); err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully!",
	})
}

// GetPostComments handles GET /api/v1/comments/post/:postId
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	userID := currentUserID(c)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.GetPostComments(c.Context(), userID, postID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"comments": comments,
	})
}

// GetReplies handles GET /api/v1/comments/:commentId/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	userID := currentUserID(c)

	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	replies, err := s.commentService.GetReplies(c.Context(), userID, commentID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"replies": replies,
	})
}
