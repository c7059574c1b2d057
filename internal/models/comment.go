// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post. A comment with a non-nil
// RepliedToCommentID is a sub-comment of a top-level comment; nesting stops
// there, sub-comments cannot have children of their own.
type Comment struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Content            string         `gorm:"not null" json:"content"`
	UserID             uint           `gorm:"not null" json:"user_id"`
	PostID             uint           `gorm:"not null;index" json:"post_id"`
	RepliedToCommentID *uint          `gorm:"index" json:"replied_to_comment_id,omitempty"`
	User               User           `gorm:"foreignKey:UserID" json:"user"`
	Post               Post           `gorm:"foreignKey:PostID" json:"post,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsReply reports whether the comment is a sub-comment.
func (c *Comment) IsReply() bool {
	return c.RepliedToCommentID != nil
}
