package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
)

// ItemView is one saved product.
type ItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	InStock   bool            `json:"in_stock"`
	ImagePath *string         `json:"image_path,omitempty"`
	SavedAt   time.Time       `json:"saved_at"`
}

// Service manages a user's saved products.
type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]ItemView, error)
	Add(ctx context.Context, userID, productID uuid.UUID) error
	Remove(ctx context.Context, userID, productID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService constructs a wishlist service with the provided dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]ItemView, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list wishlist")
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		view := ItemView{ProductID: item.ProductID, SavedAt: item.CreatedAt}
		if item.Product != nil {
			view.Name = item.Product.Name
			view.Price = item.Product.Price
			view.InStock = item.Product.InStock
			view.ImagePath = item.Product.ImagePath
		}
		views = append(views, view)
	}
	return views, nil
}

// Add saves a product. Saving the same product twice is a no-op.
func (s *service) Add(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.repo.FindProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}

	if _, err := s.repo.Add(ctx, userID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add wishlist item")
	}
	return nil
}

func (s *service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	rows, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove wishlist item")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wishlist item not found")
	}
	return nil
}
