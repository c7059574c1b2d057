package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"twinstagram/internal/config"
	"twinstagram/internal/models"
	"twinstagram/internal/policy"
	"twinstagram/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFollowRepository is a mock of the FollowRepository interface
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(ctx context.Context, follow *models.Follow) error {
	args := m.Called(ctx, follow)
	return args.Error(0)
}

func (m *MockFollowRepository) GetByID(ctx context.Context, id uint) (*models.Follow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Follow), args.Error(1)
}

func (m *MockFollowRepository) GetBetween(ctx context.Context, byID, toID uint) (*models.Follow, error) {
	args := m.Called(ctx, byID, toID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Follow), args.Error(1)
}

func (m *MockFollowRepository) IsFollowing(ctx context.Context, byID, toID uint) (bool, error) {
	args := m.Called(ctx, byID, toID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) Accept(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, targetID, viewerID uint) ([]models.Follow, error) {
	args := m.Called(ctx, targetID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

func (m *MockFollowRepository) ListFollowings(ctx context.Context, targetID, viewerID uint) ([]models.Follow, error) {
	args := m.Called(ctx, targetID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

func (m *MockFollowRepository) ListPendingReceived(ctx context.Context, userID uint) ([]models.Follow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

func (m *MockFollowRepository) ListPendingSent(ctx context.Context, userID uint) ([]models.Follow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Follow), args.Error(1)
}

// newFollowTestApp wires a Fiber app with the follow routes behind a stub
// auth layer that authenticates every request as userID.
func newFollowTestApp(userRepo *MockUserRepository, followRepo *MockFollowRepository, userID uint) *fiber.App {
	engine := policy.NewEngine(userRepo, followRepo)
	s := &Server{
		config:        &config.Config{JWTSecret: "test_secret"},
		userRepo:      userRepo,
		followRepo:    followRepo,
		policy:        engine,
		followService: service.NewFollowService(followRepo, userRepo, engine),
	}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})

	follow := app.Group("/follow")
	follow.Post("/new/:targetUserId", s.RequestFollow)
	follow.Put("/request/:requestId/accept", s.AcceptFollowRequest)
	follow.Get("/followers/:targetUserId", s.GetFollowers)
	follow.Get("/followings/:targetUserId", s.GetFollowings)
	follow.Delete("/:requestId", s.DeleteFollow)
	return app
}

func TestRequestFollowSelfConflict(t *testing.T) {
	app := newFollowTestApp(new(MockUserRepository), new(MockFollowRepository), 1)

	req := httptest.NewRequest(http.MethodPost, "/follow/new/1", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRequestFollowMissingTarget(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("User not found!"))

	app := newFollowTestApp(userRepo, new(MockFollowRepository), 1)

	req := httptest.NewRequest(http.MethodPost, "/follow/new/99", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestFollowDuplicateConflict(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, ProfileType: models.ProfilePublic}, nil)

	followRepo := new(MockFollowRepository)
	followRepo.On("GetBetween", mock.Anything, uint(1), uint(2)).
		Return(&models.Follow{ID: 4, Status: models.FollowStatusPending}, nil)

	app := newFollowTestApp(userRepo, followRepo, 1)

	req := httptest.NewRequest(http.MethodPost, "/follow/new/2", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAcceptFollowRequestNotAddressee(t *testing.T) {
	followRepo := new(MockFollowRepository)
	followRepo.On("GetByID", mock.Anything, uint(5)).
		Return(&models.Follow{ID: 5, RequestByID: 2, RequestToID: 3, Status: models.FollowStatusPending}, nil)

	// Caller 1 is neither endpoint; request must look missing, not forbidden.
	app := newFollowTestApp(new(MockUserRepository), followRepo, 1)

	req := httptest.NewRequest(http.MethodPut, "/follow/request/5/accept", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteFollowOutsiderNotFound(t *testing.T) {
	followRepo := new(MockFollowRepository)
	followRepo.On("GetByID", mock.Anything, uint(6)).
		Return(&models.Follow{ID: 6, RequestByID: 2, RequestToID: 3, Status: models.FollowStatusAccepted}, nil)

	app := newFollowTestApp(new(MockUserRepository), followRepo, 1)

	req := httptest.NewRequest(http.MethodDelete, "/follow/6", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetFollowersPrivateStrangerNotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, ProfileType: models.ProfilePrivate}, nil)

	followRepo := new(MockFollowRepository)
	followRepo.On("IsFollowing", mock.Anything, uint(1), uint(2)).Return(false, nil)

	app := newFollowTestApp(userRepo, followRepo, 1)

	// Denial surfaces as 404, never 403.
	req := httptest.NewRequest(http.MethodGet, "/follow/followers/2", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetFollowersFollowerAllowed(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("GetByID", mock.Anything, uint(2)).
		Return(&models.User{ID: 2, ProfileType: models.ProfilePrivate}, nil)

	followRepo := new(MockFollowRepository)
	followRepo.On("IsFollowing", mock.Anything, uint(1), uint(2)).Return(true, nil)
	followRepo.On("ListFollowers", mock.Anything, uint(2), uint(1)).
		Return([]models.Follow{{ID: 9}}, nil)

	app := newFollowTestApp(userRepo, followRepo, 1)

	req := httptest.NewRequest(http.MethodGet, "/follow/followers/2", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequestFollowInvalidParam(t *testing.T) {
	app := newFollowTestApp(new(MockUserRepository), new(MockFollowRepository), 1)

	req := httptest.NewRequest(http.MethodPost, "/follow/new/zero", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
