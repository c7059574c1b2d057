// Package models contains data structures for the application's domain models.
package models

import "time"

// FollowStatus represents the state of a directed follow edge.
type FollowStatus string

const (
	// FollowStatusPending indicates a follow request awaiting the target's approval.
	// Only edges towards PRIVATE profiles are ever created in this state.
	FollowStatusPending FollowStatus = "PENDING"
	// FollowStatusAccepted indicates an active follow relationship.
	// Kept as "TRUE" on the wire for compatibility with existing clients.
	FollowStatusAccepted FollowStatus = "TRUE"
)

// Follow is a directed edge: RequestBy asked to follow RequestTo.
// The composite unique index makes edge uniqueness a storage-level
// guarantee, so concurrent duplicate requests cannot both succeed.
// Edges are hard-deleted; a removed edge must not block re-following.
type Follow struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	RequestByID uint         `gorm:"not null;uniqueIndex:idx_follow_edge" json:"request_by_id"`
	RequestToID uint         `gorm:"not null;uniqueIndex:idx_follow_edge" json:"request_to_id"`
	Status      FollowStatus `gorm:"type:varchar(10);not null;default:'PENDING';index:idx_follows_status" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relationships
	RequestBy User `gorm:"foreignKey:RequestByID" json:"request_by,omitempty"`
	RequestTo User `gorm:"foreignKey:RequestToID" json:"request_to,omitempty"`

	// ViewerFollows is not persisted; computed at query time for
	// follower/following listings so clients can render follow buttons.
	ViewerFollows bool `gorm:"->" json:"viewer_follows"`
}

// TableName specifies the table name for GORM
func (Follow) TableName() string {
	return "follows"
}
