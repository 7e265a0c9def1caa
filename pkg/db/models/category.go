package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
)

// Category is one of the fixed catalog categories. Rows are seeded by
// migration; nothing in the request path ever inserts one.
type Category struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      enums.Category `gorm:"column:name;type:text;not null;uniqueIndex"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}
