package server

import (
	"twinstagram/internal/models"
	"twinstagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/v1/posts/new
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	in := service.CreatePostInput{
		UserID:  userID,
		Content: c.FormValue("content"),
	}

	// Plain JSON bodies are accepted for text-only posts.
	if in.Content == "" {
		var req struct {
			Content string `json:"content"`
		}
		if err := c.BodyParser(&req); err == nil {
			in.Content = req.Content
		}
	}

	image, contentType, err := readFormImage(c, "image")
	if err != nil {
		return models.RespondForError(c, err)
	}
	in.Image = image
	in.ImageContentType = contentType

	post, err := s.postService.CreatePost(c.Context(), in)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully!",
		"post":    post,
	})
}

// UpdatePost handles PUT /api/v1/posts/:postId
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	postID, err := s.parseID(c, "postId")
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

	post, err := s.postService.UpdatePost(c.Context(), userID, postID, req.Content)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post updated successfully!",
		"post":    post,
	})
}

// DeletePost handles DELETE /api/v1/posts/:postId
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), userID, postID); err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted successfully!",
	})
}

// GetMyPosts handles GET /api/v1/posts/myposts
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID := currentUserID(c)

	posts, err := s.postService.GetMyPosts(c.Context(), userID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
	})
}

// GetPost handles GET /api/v1/posts/post/:postId
func (s *Server) GetPost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), userID, postID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"post": post,
	})
}

// GetFeed handles GET /api/v1/posts/feed
func (s *Server) GetFeed(c *fiber.Ctx) error {
	userID := currentUserID(c)

	page, limit := parseFeedPaging(c)

	feed, err := s.postService.GetFeed(c.Context(), userID, page, limit)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(feed)
}

// ToggleLike handles POST /api/v1/posts/like/:postId
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID := currentUserID(c)

	postID, err := s.parseID(c, "postId")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.Context(), userID, postID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	message := "Post unliked successfully!"
	if post.Liked {
		message = "Post liked successfully!"
	}

	return c.JSON(fiber.Map{
		"message": message,
		"post":    post,
	})
}
