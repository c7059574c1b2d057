// Package policy implements the visibility rules deciding who may read
// whose profile, posts, comments, followers and followings. The read rule
// is a single invariant — self, public owner, or accepted follow edge from
// the viewer to the owner — expressed once as composable GORM scopes so the
// post, comment and relationship lookups can never drift apart. Lookups
// carry the predicate inside the query itself: a denied entity is simply
// not found, which keeps private accounts unenumerable.
package policy

import (
	"context"

	"twinstagram/internal/models"

	"gorm.io/gorm"
)

// Access classifies the relationship between a viewer and a target user.
type Access int

const (
	// AccessDenied means the target exists but must be treated as not found.
	AccessDenied Access = iota
	// AccessPublic grants read because the target profile is PUBLIC.
	AccessPublic
	// AccessFollower grants read to a PRIVATE target because an accepted
	// follow edge viewer -> target exists. Following a PUBLIC target
	// classifies as AccessPublic, not AccessFollower.
	AccessFollower
	// AccessSelf grants full access; ownership short-circuits every other rule.
	AccessSelf
)

// Granted reports whether the access category allows reading the target's
// content and relationship lists.
func (a Access) Granted() bool {
	return a != AccessDenied
}

// ProfileLabel is the category string surfaced on the profile endpoint.
func (a Access) ProfileLabel() string {
	switch a {
	case AccessSelf:
		return "SELF"
	case AccessFollower:
		return "PRIVATE"
	default:
		return "PUBLIC"
	}
}

// UserSource resolves user records for access decisions.
type UserSource interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// FollowSource answers whether an accepted follow edge exists.
type FollowSource interface {
	IsFollowing(ctx context.Context, byID, toID uint) (bool, error)
}

// Engine decides profile-level access by consulting identity and follow
// edge state.
type Engine struct {
	users   UserSource
	follows FollowSource
}

// NewEngine returns a policy engine over the given sources.
func NewEngine(users UserSource, follows FollowSource) *Engine {
	return &Engine{users: users, follows: follows}
}

// CanView decides whether viewerID may read targetUserID's profile, posts
// and relationship lists. The target user is returned alongside the
// decision so callers do not repeat the lookup. A missing target surfaces
// as the repository's not-found error.
func (e *Engine) CanView(ctx context.Context, viewerID, targetUserID uint) (Access, *models.User, error) {
	target, err := e.users.GetByID(ctx, targetUserID)
	if err != nil {
		return AccessDenied, nil, err
	}

	if viewerID == targetUserID {
		return AccessSelf, target, nil
	}

	// PUBLIC wins over the follow edge so the access category (and the
	// profile label derived from it) always reflects the target's type.
	// It also spares the edge lookup for public targets.
	if target.ProfileType == models.ProfilePublic {
		return AccessPublic, target, nil
	}

	following, err := e.follows.IsFollowing(ctx, viewerID, targetUserID)
	if err != nil {
		return AccessDenied, nil, err
	}
	if following {
		return AccessFollower, target, nil
	}

	return AccessDenied, target, nil
}

// PostVisible returns a scope restricting a posts query to rows the viewer
// may read: own posts, posts by PUBLIC owners, and posts by owners the
// viewer follows with an accepted edge.
func PostVisible(viewerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			`posts.user_id = ?
			OR EXISTS (SELECT 1 FROM users WHERE users.id = posts.user_id AND users.profile_type = ? AND users.deleted_at IS NULL)
			OR EXISTS (SELECT 1 FROM follows WHERE follows.request_by_id = ? AND follows.request_to_id = posts.user_id AND follows.status = ?)`,
			viewerID, models.ProfilePublic, viewerID, models.FollowStatusAccepted,
		)
	}
}

// CommentVisible returns a scope restricting a comments query to rows the
// viewer may read. The predicate mirrors PostVisible evaluated against the
// comment's author, with two ownership short-circuits: the comment author
// and the owner of the parent post always see the comment.
func CommentVisible(viewerID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			`comments.user_id = ?
			OR EXISTS (SELECT 1 FROM posts WHERE posts.id = comments.post_id AND posts.user_id = ? AND posts.deleted_at IS NULL)
			OR EXISTS (SELECT 1 FROM users WHERE users.id = comments.user_id AND users.profile_type = ? AND users.deleted_at IS NULL)
			OR EXISTS (SELECT 1 FROM follows WHERE follows.request_by_id = ? AND follows.request_to_id = comments.user_id AND follows.status = ?)`,
			viewerID, viewerID, models.ProfilePublic, viewerID, models.FollowStatusAccepted,
		)
	}
}
