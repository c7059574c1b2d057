// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// ProfileType controls who may read a user's content.
type ProfileType string

const (
	// ProfilePublic makes posts, comments and relationship lists readable by anyone.
	ProfilePublic ProfileType = "PUBLIC"
	// ProfilePrivate restricts reads to accepted followers.
	ProfilePrivate ProfileType = "PRIVATE"
)

// Valid reports whether t is one of the two supported profile types.
func (t ProfileType) Valid() bool {
	return t == ProfilePublic || t == ProfilePrivate
}

// User represents a registered Twinstagram account.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	FirstName      string         `gorm:"not null" json:"first_name"`
	LastName       string         `gorm:"not null" json:"last_name"`
	Password       string         `gorm:"not null" json:"-"`
	ProfilePicture string         `json:"profile_picture"`
	ProfileType    ProfileType    `gorm:"type:varchar(10);not null;default:'PUBLIC'" json:"profile_type"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}
