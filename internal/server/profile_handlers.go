package server

import (
	"io"

	"twinstagram/internal/models"
	"twinstagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// maxImageSize caps uploaded images at 5 MB.
const maxImageSize = 5 << 20

// readFormImage reads an optional uploaded file from the multipart form.
// Returns nil bytes when the field is absent.
func readFormImage(c *fiber.Ctx, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}
	if fh.Size > maxImageSize {
		return nil, "", models.NewValidationError("Image must not exceed 5MB")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return data, fh.Header.Get("Content-Type"), nil
}

// UpdateProfile handles PUT /api/v1/profile
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	in := service.UpdateProfileInput{
		UserID:        userID,
		Username:      c.FormValue("username"),
		FirstName:     c.FormValue("firstName"),
		LastName:      c.FormValue("lastName"),
		RemovePicture: c.FormValue("removePicture") == "true",
	}

	// Plain JSON bodies are accepted too (no picture change).
	if in.Username == "" && in.FirstName == "" && in.LastName == "" {
		var req struct {
			Username      string `json:"username"`
			FirstName     string `json:"firstName"`
			LastName      string `json:"lastName"`
			RemovePicture bool   `json:"removePicture"`
		}
		if err := c.BodyParser(&req); err == nil {
			in.Username = req.Username
			in.FirstName = req.FirstName
			in.LastName = req.LastName
			in.RemovePicture = in.RemovePicture || req.RemovePicture
		}
	}

	picture, contentType, err := readFormImage(c, "profilePicture")
	if err != nil {
		return models.RespondForError(c, err)
	}
	in.Picture = picture
	in.PictureContentType = contentType

	user, err := s.profileService.UpdateProfile(c.Context(), in)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated successfully!",
		"user":    user,
	})
}

// GetProfile handles GET /api/v1/profile/:targetUserId
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	targetID, err := s.parseID(c, "targetUserId")
	if err != nil {
		return nil
	}

	view, err := s.profileService.GetProfile(c.Context(), userID, targetID)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"type": view.Type,
		"user": view.User,
	})
}

// ToggleProfileType handles PUT /api/v1/profile/type/toggle
func (s *Server) ToggleProfileType(c *fiber.Ctx) error {
	userID := currentUserID(c)

	profileType := c.Query("profileType")
	if profileType == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("profileType query parameter is required"))
	}

	user, err := s.profileService.SetProfileType(c.Context(), userID, profileType)
	if err != nil {
		return models.RespondForError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Profile type updated successfully!",
		"user":    user,
	})
}
