package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
)

// ProductView is the API shape for a catalog product.
type ProductView struct {
	ID                 uuid.UUID       `json:"id"`
	Category           enums.Category  `json:"category"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Rating             decimal.Decimal `json:"rating"`
	InStock            bool            `json:"in_stock"`
	ImagePath          *string         `json:"image_path,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ListParams filters the public product listing.
type ListParams struct {
	Category string
	Limit    int
	Cursor   string
}

// ListResult carries a page of products plus the next cursor.
type ListResult struct {
	Items  []ProductView `json:"items"`
	Cursor string        `json:"cursor,omitempty"`
}

// CreateProductParams is the admin input for a new product.
type CreateProductParams struct {
	Category           string          `json:"category" validate:"required"`
	Name               string          `json:"name" validate:"required,min=2,max=200"`
	Description        string          `json:"description" validate:"max=5000"`
	Price              decimal.Decimal `json:"price" validate:"required"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Rating             decimal.Decimal `json:"rating"`
	InStock            *bool           `json:"in_stock"`
	ImagePath          *string         `json:"image_path"`
}

// UpdateProductParams is the admin patch input. Nil fields are left untouched.
type UpdateProductParams struct {
	Category           *string          `json:"category"`
	Name               *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Description        *string          `json:"description" validate:"omitempty,max=5000"`
	Price              *decimal.Decimal `json:"price"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	Rating             *decimal.Decimal `json:"rating"`
	InStock            *bool            `json:"in_stock"`
	ImagePath          *string          `json:"image_path"`
}

func toProductView(product models.Product) ProductView {
	view := ProductView{
		ID:                 product.ID,
		Name:               product.Name,
		Description:        product.Description,
		Price:              product.Price,
		DiscountPercentage: product.DiscountPercentage,
		Rating:             product.Rating,
		InStock:            product.InStock,
		ImagePath:          product.ImagePath,
		CreatedAt:          product.CreatedAt,
	}
	if product.Category != nil {
		view.Category = product.Category.Name
	}
	return view
}
