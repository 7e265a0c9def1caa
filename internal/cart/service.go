package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
)

// Service defines the behavior needed by the cart controller.
type Service interface {
	View(ctx context.Context, userID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, userID uuid.UUID, params AddItemParams) (*View, error)
	UpdateItem(ctx context.Context, userID, productID uuid.UUID, params UpdateItemParams) (*View, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*View, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService constructs a cart service with the provided dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) View(ctx context.Context, userID uuid.UUID) (*View, error) {
	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart items")
	}

	view := &View{Items: make([]ItemView, 0, len(items)), Total: decimal.Zero}
	for _, item := range items {
		itemView := toItemView(item)
		view.Items = append(view.Items, itemView)
		view.Total = view.Total.Add(itemView.LineTotal)
	}
	return view, nil
}

func (s *service) AddItem(ctx context.Context, userID uuid.UUID, params AddItemParams) (*View, error) {
	if params.Quantity <= 0 {
		params.Quantity = 1
	}

	product, err := s.repo.FindProductByID(ctx, params.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	if !product.InStock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
	}

	if err := s.repo.AddItem(ctx, userID, product.ID, params.Quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
	}
	return s.View(ctx, userID)
}

func (s *service) UpdateItem(ctx context.Context, userID, productID uuid.UUID, params UpdateItemParams) (*View, error) {
	rows, err := s.repo.SetQuantity(ctx, userID, productID, params.Quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.View(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*View, error) {
	rows, err := s.repo.RemoveItem(ctx, userID, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.View(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return nil
}
