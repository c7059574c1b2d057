package service

import (
	"context"

	"twinstagram/internal/models"
	"twinstagram/internal/policy"
	"twinstagram/internal/repository"
)

// AccessChecker decides whether a viewer may read a target profile.
// Satisfied by *policy.Engine.
type AccessChecker interface {
	CanView(ctx context.Context, viewerID, targetUserID uint) (policy.Access, *models.User, error)
}

// FollowService implements the follow-request state machine and the
// follower/following listings that hang off it.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	access     AccessChecker
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, access AccessChecker) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		access:     access,
	}
}

// RequestFollow creates a follow edge from userID to targetUserID. Public
// targets are followed immediately; private targets get a pending request.
func (s *FollowService) RequestFollow(ctx context.Context, userID, targetUserID uint) (*models.Follow, error) {
	if userID == targetUserID {
		return nil, models.NewConflictError("You cannot follow yourself!")
	}

	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}

	existing, err := s.followRepo.GetBetween(ctx, userID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("This follow request already exists!")
	}

	status := models.FollowStatusAccepted
	if target.ProfileType == models.ProfilePrivate {
		status = models.FollowStatusPending
	}

	follow := &models.Follow{
		RequestByID: userID,
		RequestToID: targetUserID,
		Status:      status,
	}
	// The unique index on (request_by_id, request_to_id) closes the race
	// between the guard read above and this insert.
	if err := s.followRepo.Create(ctx, follow); err != nil {
		return nil, err
	}

	return s.followRepo.GetByID(ctx, follow.ID)
}

// AcceptFollowRequest transitions a pending request to accepted. Only the
// addressee may accept; anyone else sees the request as missing.
func (s *FollowService) AcceptFollowRequest(ctx context.Context, userID, requestID uint) (*models.Follow, error) {
	follow, err := s.followRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if follow.RequestToID != userID {
		return nil, models.NewNotFoundError("Cannot find follow request!")
	}
	if follow.Status == models.FollowStatusAccepted {
		return nil, models.NewConflictError("This follow request is already accepted!")
	}

	if err := s.followRepo.Accept(ctx, requestID); err != nil {
		return nil, err
	}

	return s.followRepo.GetByID(ctx, requestID)
}

// DeleteFollow removes a follow edge. Either endpoint may delete it; the
// returned message reflects which side acted and whether the edge was still
// pending.
func (s *FollowService) DeleteFollow(ctx context.Context, userID, requestID uint) (string, error) {
	follow, err := s.followRepo.GetByID(ctx, requestID)
	if err != nil {
		return "", err
	}

	if follow.RequestByID != userID && follow.RequestToID != userID {
		return "", models.NewNotFoundError("Cannot find follow request!")
	}

	if err := s.followRepo.Delete(ctx, requestID); err != nil {
		return "", err
	}

	if follow.Status == models.FollowStatusPending {
		if follow.RequestByID == userID {
			return "Follow request deleted successfully!", nil
		}
		return "Follow request rejected successfully!", nil
	}
	if follow.RequestByID == userID {
		return "User unfollowed successfully!", nil
	}
	return "User removed from following successfully!", nil
}

// GetFollowers lists accepted followers of targetUserID, gated by the
// viewer's access to the target profile.
func (s *FollowService) GetFollowers(ctx context.Context, viewerID, targetUserID uint) ([]models.Follow, error) {
	if err := s.requireProfileAccess(ctx, viewerID, targetUserID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, targetUserID, viewerID)
}

// GetFollowings lists users targetUserID follows, gated like GetFollowers.
func (s *FollowService) GetFollowings(ctx context.Context, viewerID, targetUserID uint) ([]models.Follow, error) {
	if err := s.requireProfileAccess(ctx, viewerID, targetUserID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowings(ctx, targetUserID, viewerID)
}

// GetNotFollowing returns users the caller neither follows nor has requested.
func (s *FollowService) GetNotFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	return s.userRepo.ListNotFollowedBy(ctx, userID)
}

// GetPendingFollowRequests returns pending requests addressed to the user.
func (s *FollowService) GetPendingFollowRequests(ctx context.Context, userID uint) ([]models.Follow, error) {
	return s.followRepo.ListPendingReceived(ctx, userID)
}

// GetPendingFollowingRequests returns pending requests the user has sent.
func (s *FollowService) GetPendingFollowingRequests(ctx context.Context, userID uint) ([]models.Follow, error) {
	return s.followRepo.ListPendingSent(ctx, userID)
}

func (s *FollowService) requireProfileAccess(ctx context.Context, viewerID, targetUserID uint) error {
	access, _, err := s.access.CanView(ctx, viewerID, targetUserID)
	if err != nil {
		return err
	}
	if !access.Granted() {
		return models.NewNotFoundError("User not found!")
	}
	return nil
}
