package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Price is the live price; orders snapshot it
// into OrderItem rows at checkout and never read it again.
type Product struct {
	ID                 uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID         uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index"`
	Category           *Category       `gorm:"foreignKey:CategoryID"`
	Name               string          `gorm:"column:name;type:text;not null"`
	Description        string          `gorm:"column:description;type:text;not null;default:''"`
	Price              decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	DiscountPercentage decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2);not null;default:0"`
	Rating             decimal.Decimal `gorm:"column:rating;type:numeric(3,1);not null;default:0"`
	InStock            bool            `gorm:"column:in_stock;not null;default:true"`
	ImagePath          *string         `gorm:"column:image_path"`
	CreatedAt          time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
