package service

import (
	"context"

	"twinstagram/internal/models"
	"twinstagram/internal/policy"
)

type followRepoStub struct {
	createFn              func(context.Context, *models.Follow) error
	getByIDFn             func(context.Context, uint) (*models.Follow, error)
	getBetweenFn          func(context.Context, uint, uint) (*models.Follow, error)
	isFollowingFn         func(context.Context, uint, uint) (bool, error)
	acceptFn              func(context.Context, uint) error
	deleteFn              func(context.Context, uint) error
	listFollowersFn       func(context.Context, uint, uint) ([]models.Follow, error)
	listFollowingsFn      func(context.Context, uint, uint) ([]models.Follow, error)
	listPendingReceivedFn func(context.Context, uint) ([]models.Follow, error)
	listPendingSentFn     func(context.Context, uint) ([]models.Follow, error)
}

func (s *followRepoStub) Create(ctx context.Context, follow *models.Follow) error {
	return s.createFn(ctx, follow)
}
func (s *followRepoStub) GetByID(ctx context.Context, id uint) (*models.Follow, error) {
	return s.getByIDFn(ctx, id)
}
func (s *followRepoStub) GetBetween(ctx context.Context, byID, toID uint) (*models.Follow, error) {
	return s.getBetweenFn(ctx, byID, toID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, byID, toID uint) (bool, error) {
	return s.isFollowingFn(ctx, byID, toID)
}
func (s *followRepoStub) Accept(ctx context.Context, id uint) error {
	return s.acceptFn(ctx, id)
}
func (s *followRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *followRepoStub) ListFollowers(ctx context.Context, targetID, viewerID uint) ([]models.Follow, error) {
	return s.listFollowersFn(ctx, targetID, viewerID)
}
func (s *followRepoStub) ListFollowings(ctx context.Context, targetID, viewerID uint) ([]models.Follow, error) {
	return s.listFollowingsFn(ctx, targetID, viewerID)
}
func (s *followRepoStub) ListPendingReceived(ctx context.Context, userID uint) ([]models.Follow, error) {
	return s.listPendingReceivedFn(ctx, userID)
}
func (s *followRepoStub) ListPendingSent(ctx context.Context, userID uint) ([]models.Follow, error) {
	return s.listPendingSentFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		createFn:              func(context.Context, *models.Follow) error { return nil },
		getByIDFn:             func(context.Context, uint) (*models.Follow, error) { return &models.Follow{}, nil },
		getBetweenFn:          func(context.Context, uint, uint) (*models.Follow, error) { return nil, nil },
		isFollowingFn:         func(context.Context, uint, uint) (bool, error) { return false, nil },
		acceptFn:              func(context.Context, uint) error { return nil },
		deleteFn:              func(context.Context, uint) error { return nil },
		listFollowersFn:       func(context.Context, uint, uint) ([]models.Follow, error) { return nil, nil },
		listFollowingsFn:      func(context.Context, uint, uint) ([]models.Follow, error) { return nil, nil },
		listPendingReceivedFn: func(context.Context, uint) ([]models.Follow, error) { return nil, nil },
		listPendingSentFn:     func(context.Context, uint) ([]models.Follow, error) { return nil, nil },
	}
}

type userRepoStub struct {
	getByIDFn           func(context.Context, uint) (*models.User, error)
	getByUsernameFn     func(context.Context, string) (*models.User, error)
	usernameTakenFn     func(context.Context, string, uint) (bool, error)
	createFn            func(context.Context, *models.User) error
	updateFn            func(context.Context, *models.User) error
	setProfileTypeFn    func(context.Context, uint, models.ProfileType) (*models.User, error)
	listNotFollowedByFn func(context.Context, uint) ([]models.User, error)
	deleteFn            func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) UsernameTaken(ctx context.Context, username string, selfID uint) (bool, error) {
	return s.usernameTakenFn(ctx, username, selfID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) SetProfileType(ctx context.Context, userID uint, profileType models.ProfileType) (*models.User, error) {
	return s.setProfileTypeFn(ctx, userID, profileType)
}
func (s *userRepoStub) ListNotFollowedBy(ctx context.Context, userID uint) ([]models.User, error) {
	return s.listNotFollowedByFn(ctx, userID)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:       func(context.Context, uint) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		usernameTakenFn: func(context.Context, string, uint) (bool, error) { return false, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		setProfileTypeFn: func(context.Context, uint, models.ProfileType) (*models.User, error) {
			return &models.User{}, nil
		},
		listNotFollowedByFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
		deleteFn:            func(context.Context, uint) error { return nil },
	}
}

type postRepoStub struct {
	createFn         func(context.Context, *models.Post) error
	getVisibleByIDFn func(context.Context, uint, uint) (*models.Post, error)
	getOwnedFn       func(context.Context, uint, uint) (*models.Post, error)
	listByUserFn     func(context.Context, uint) ([]*models.Post, error)
	feedFn           func(context.Context, uint, int, int) ([]*models.Post, int64, error)
	updateFn         func(context.Context, *models.Post) error
	deleteFn         func(context.Context, uint) error
	toggleLikeFn     func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetVisibleByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getVisibleByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) GetOwned(ctx context.Context, id, ownerID uint) (*models.Post, error) {
	return s.getOwnedFn(ctx, id, ownerID)
}
func (s *postRepoStub) ListByUser(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.listByUserFn(ctx, userID)
}
func (s *postRepoStub) Feed(ctx context.Context, viewerID uint, page, limit int) ([]*models.Post, int64, error) {
	return s.feedFn(ctx, viewerID, page, limit)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:         func(context.Context, *models.Post) error { return nil },
		getVisibleByIDFn: func(context.Context, uint, uint) (*models.Post, error) { return &models.Post{}, nil },
		getOwnedFn:       func(context.Context, uint, uint) (*models.Post, error) { return &models.Post{}, nil },
		listByUserFn:     func(context.Context, uint) ([]*models.Post, error) { return nil, nil },
		feedFn: func(context.Context, uint, int, int) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn:     func(context.Context, *models.Post) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
		toggleLikeFn: func(context.Context, uint, uint) (bool, error) { return true, nil },
	}
}

type commentRepoStub struct {
	createFn            func(context.Context, *models.Comment) error
	getByIDFn           func(context.Context, uint) (*models.Comment, error)
	getOwnedFn          func(context.Context, uint, uint) (*models.Comment, error)
	getDeletableFn      func(context.Context, uint, uint) (*models.Comment, error)
	getMainVisibleFn    func(context.Context, uint, uint) (*models.Comment, error)
	listByPostFn        func(context.Context, uint) ([]*models.Comment, error)
	listRepliesFn       func(context.Context, uint) ([]*models.Comment, error)
	updateFn            func(context.Context, *models.Comment) error
	deleteWithRepliesFn func(context.Context, uint) error
	deleteFn            func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) GetOwned(ctx context.Context, id, authorID uint) (*models.Comment, error) {
	return s.getOwnedFn(ctx, id, authorID)
}
func (s *commentRepoStub) GetDeletable(ctx context.Context, id, callerID uint) (*models.Comment, error) {
	return s.getDeletableFn(ctx, id, callerID)
}
func (s *commentRepoStub) GetMainVisible(ctx context.Context, id, viewerID uint) (*models.Comment, error) {
	return s.getMainVisibleFn(ctx, id, viewerID)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, commentID)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) DeleteWithReplies(ctx context.Context, id uint) error {
	return s.deleteWithRepliesFn(ctx, id)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:            func(context.Context, *models.Comment) error { return nil },
		getByIDFn:           func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getOwnedFn:          func(context.Context, uint, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getDeletableFn:      func(context.Context, uint, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		getMainVisibleFn:    func(context.Context, uint, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn:        func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
		listRepliesFn:       func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
		updateFn:            func(context.Context, *models.Comment) error { return nil },
		deleteWithRepliesFn: func(context.Context, uint) error { return nil },
		deleteFn:            func(context.Context, uint) error { return nil },
	}
}

type accessStub struct {
	canViewFn func(context.Context, uint, uint) (policy.Access, *models.User, error)
}

func (s *accessStub) CanView(ctx context.Context, viewerID, targetUserID uint) (policy.Access, *models.User, error) {
	return s.canViewFn(ctx, viewerID, targetUserID)
}

func grantAccess(access policy.Access) *accessStub {
	return &accessStub{
		canViewFn: func(context.Context, uint, uint) (policy.Access, *models.User, error) {
			return access, &models.User{}, nil
		},
	}
}
