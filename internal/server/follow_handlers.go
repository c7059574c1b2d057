package server

import (
	"twinstagram/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequestFollow handles POST /api/v1/follow/new/:targetUserId
func (s *Server) RequestFollow(c *fiber.Ctx) error {
	userID := currentUserID(c)

	targetID, err := s.parseID(c, "targetUserId")
	if err != nil {
		return nil
	}

	follow, err := s.followService.RequestFollow(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	message := "Follow request sent successfully!"
	if follow.Status == models.FollowStatusAccepted {
		message = "User followed successfully!"
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"follow":  follow,
	})
}

// AcceptFollowRequest handles PUT /api/v1/follow/request/:requestId/accept
func (s *Server) AcceptFollowRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)

	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	follow, err := s.followService.AcceptFollowRequest(c.Context(), userID, requestID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Follow request accepted successfully!",
		"follow":  follow,
	})
}

// DeleteFollow handles DELETE /api/v1/follow/:requestId
func (s *Server) DeleteFollow(c *fiber.Ctx) error {
	userID := currentUserID(c)

	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	message, err := s.followService.DeleteFollow(c.Context(), userID, requestID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": message,
	})
}

// GetFollowers handles GET /api/v1/follow/followers/:targetUserId
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID := currentUserID(c)

	targetID, err := s.parseID(c, "targetUserId")
	if err != nil {
		return nil
	}

	followers, err := s.followService.GetFollowers(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"followers": followers,
	})
}

// GetFollowings handles GET /api/v1/follow/followings/:targetUserId
func (s *Server) GetFollowings(c *fiber.Ctx) error {
	userID := currentUserID(c)

	targetID, err := s.parseID(c, "targetUserId")
	if err != nil {
		return nil
	}

	followings, err := s.followService.GetFollowings(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"followings": followings,
	})
}

// GetNotFollowing handles GET /api/v1/follow/notFollowing
func (s *Server) GetNotFollowing(c *fiber.Ctx) error {
	userID := currentUserID(c)

	users, err := s.followService.GetNotFollowing(c.Context(), userID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

// GetPendingFollowRequests handles GET /api/v1/follow/pending/followRequests
func (s *Server) GetPendingFollowRequests(c *fiber.Ctx) error {
	userID := currentUserID(c)

	requests, err := s.followService.GetPendingFollowRequests(c.Context(), userID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

// GetPendingFollowingRequests handles GET /api/v1/follow/pending/followingRequests
func (s *Server) GetPendingFollowingRequests(c *fiber.Ctx) error {
	userID := currentUserID(c)

	requests, err := s.followService.GetPendingFollowingRequests(c.Context(), userID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}
