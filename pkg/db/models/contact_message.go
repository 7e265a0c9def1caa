package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Email     string    `gorm:"column:email;type:text;not null"`
	Subject   string    `gorm:"column:subject;type:text;not null"`
	Body      string    `gorm:"column:body;type:text;not null"`
	IsRead    bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
