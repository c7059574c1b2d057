package server

import (
	"errors"
	"strings"
	"unicode"

	"twinstagram/internal/models"
	"twinstagram/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// currentUserID returns the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	uid, _ := c.Locals("userID").(uint)
	return uid
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
// The error message is derived from the parameter name (e.g. "postId" ->
// "Invalid post ID", "targetUserId" -> "Invalid target user ID").
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "postId" -> "post ID", "targetUserId" -> "target user ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	// Split on camelCase boundary before the trailing "Id" suffix.
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// parseFeedPaging extracts page and limit query parameters. Missing, malformed
// or non-positive values fall back to the defaults instead of erroring.
func parseFeedPaging(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", service.DefaultFeedPage)
	if page < 1 {
		page = service.DefaultFeedPage
	}
	limit = c.QueryInt("limit", service.DefaultFeedLimit)
	if limit < 1 {
		limit = service.DefaultFeedLimit
	}
	return page, limit
}
