// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Group is a named category that posts can be filed under. The slug is the
// URL-safe identity used in feed routes; it is unique across all groups.
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Slug        string    `gorm:"unique;not null;index" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	Posts []Post `gorm:"foreignKey:GroupID" json:"posts,omitempty"`
}
