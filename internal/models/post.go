// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post is an authored text entry, optionally filed under a group and
// optionally carrying an uploaded image. PubDate is assigned once at
// creation; feeds always sort on it descending.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	GroupID  *uint  `gorm:"index" json:"group_id,omitempty"`
	Group    *Group `gorm:"foreignKey:GroupID;constraint:OnDelete:SET NULL" json:"group,omitempty"`
	// Image is the media-store path of the uploaded image, empty when none.
	Image string `json:"image,omitempty"`
	// ImageThumb is the derived webp thumbnail path, empty when none.
	ImageThumb string    `json:"image_thumb,omitempty"`
	PubDate    time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
	UpdatedAt  time.Time `json:"updated_at"`
}
