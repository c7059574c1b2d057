package service

import (
	"context"

	"twinstagram/internal/models"
	"twinstagram/internal/repository"
	"twinstagram/internal/storage"
	"twinstagram/internal/validation"
)

// ProfileService provides profile reads and edits on top of the visibility
// policy.
type ProfileService struct {
	userRepo repository.UserRepository
	access   AccessChecker
	store    storage.ObjectStore
}

// UpdateProfileInput carries the editable profile fields. Picture holds the
// raw image bytes when a new picture was uploaded; RemovePicture clears the
// existing one.
type UpdateProfileInput struct {
	UserID             uint
	Username           string
	FirstName          string
	LastName           string
	Picture            []byte
	PictureContentType string
	RemovePicture      bool
}

// ProfileView is a profile response shaped for the caller's access level.
type ProfileView struct {
	User *models.User
	Type string
}

// NewProfileService returns a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, access AccessChecker, store storage.ObjectStore) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		access:   access,
		store:    store,
	}
}

// GetProfile returns targetUserID's profile when the viewer may see it. A
// denied or missing target is a not-found either way.
func (s *ProfileService) GetProfile(ctx context.Context, viewerID, targetUserID uint) (*ProfileView, error) {
	access, user, err := s.access.CanView(ctx, viewerID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !access.Granted() {
		return nil, models.NewNotFoundError("User not found!")
	}
	return &ProfileView{User: user, Type: access.ProfileLabel()}, nil
}

// UpdateProfile edits the caller's own profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		taken, err := s.userRepo.UsernameTaken(ctx, in.Username, in.UserID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("This username already exists!")
		}
		user.Username = in.Username
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}

	key := storage.ProfileImageKey(user.ID)
	switch {
	case len(in.Picture) > 0:
		url, err := s.store.Upload(ctx, key, in.PictureContentType, in.Picture)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.ProfilePicture = url
	case in.RemovePicture && user.ProfilePicture != "":
		if err := s.store.Remove(ctx, key); err != nil {
			return nil, models.NewInternalError(err)
		}
		user.ProfilePicture = ""
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetProfileType flips the caller's profile between PUBLIC and PRIVATE.
// Going public accepts every pending incoming follow request in the same
// transaction.
func (s *ProfileService) SetProfileType(ctx context.Context, userID uint, profileType string) (*models.User, error) {
	pt := models.ProfileType(profileType)
	if !pt.Valid() {
		return nil, models.NewValidationError("profileType must be PUBLIC or PRIVATE")
	}
	return s.userRepo.SetProfileType(ctx, userID, pt)
}
