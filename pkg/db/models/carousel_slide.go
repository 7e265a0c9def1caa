package models

import (
	"time"

	"github.com/google/uuid"
)

// CarouselSlide is a homepage carousel entry managed by admins.
type CarouselSlide struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"column:title;type:text;not null"`
	ImagePath string    `gorm:"column:image_path;type:text;not null"`
	LinkURL   *string   `gorm:"column:link_url"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
