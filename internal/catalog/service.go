package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

// Service defines the behavior needed by the product controllers.
type Service interface {
	ListProducts(ctx context.Context, params ListParams) (*ListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (*ProductView, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*ProductView, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	repoParams := listProductsParams{
		Limit:  params.Limit,
		Cursor: cursor,
	}

	if strings.TrimSpace(params.Category) != "" {
		parsed, err := enums.ParseCategory(params.Category)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		category, err := s.repo.FindCategoryByName(ctx, parsed)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find category")
		}
		repoParams.CategoryID = &category.ID
	}

	products, next, err := s.repo.ListProducts(ctx, repoParams)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	result := &ListResult{Items: make([]ProductView, 0, len(products))}
	for _, product := range products {
		result.Items = append(result.Items, toProductView(product))
	}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find product")
	}
	view := toProductView(*product)
	return &view, nil
}

func (s *service) CreateProduct(ctx context.Context, params CreateProductParams) (*ProductView, error) {
	parsed, err := enums.ParseCategory(params.Category)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	if params.Price.IsNegative() || params.Price.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if err := validateDiscount(params.DiscountPercentage); err != nil {
		return nil, err
	}
	if err := validateRating(params.Rating); err != nil {
		return nil, err
	}

	category, err := s.repo.FindCategoryByName(ctx, parsed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find category")
	}

	inStock := true
	if params.InStock != nil {
		inStock = *params.InStock
	}

	product := models.Product{
		CategoryID:         category.ID,
		Category:           category,
		Name:               strings.TrimSpace(params.Name),
		Description:        params.Description,
		Price:              params.Price,
		DiscountPercentage: params.DiscountPercentage,
		Rating:             params.Rating,
		InStock:            inStock,
		ImagePath:          params.ImagePath,
	}
	if err := s.repo.CreateProduct(ctx, &product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	view := toProductView(product)
	return &view, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, params UpdateProductParams) (*ProductView, error) {
	updates := map[string]any{}
	if params.Category != nil {
		parsed, err := enums.ParseCategory(*params.Category)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		category, err := s.repo.FindCategoryByName(ctx, parsed)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find category")
		}
		updates["category_id"] = category.ID
	}
	if params.Name != nil {
		updates["name"] = strings.TrimSpace(*params.Name)
	}
	if params.Description != nil {
		updates["description"] = *params.Description
	}
	if params.Price != nil {
		if params.Price.IsNegative() || params.Price.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
		}
		updates["price"] = *params.Price
	}
	if params.DiscountPercentage != nil {
		if err := validateDiscount(*params.DiscountPercentage); err != nil {
			return nil, err
		}
		updates["discount_percentage"] = *params.DiscountPercentage
	}
	if params.Rating != nil {
		if err := validateRating(*params.Rating); err != nil {
			return nil, err
		}
		updates["rating"] = *params.Rating
	}
	if params.InStock != nil {
		updates["in_stock"] = *params.InStock
	}
	if params.ImagePath != nil {
		updates["image_path"] = *params.ImagePath
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	rows, err := s.repo.UpdateProduct(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	return s.GetProduct(ctx, id)
}

func validateDiscount(value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 0 and 100")
	}
	return nil
}

func validateRating(value decimal.Decimal) error {
	if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(5)) {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 0 and 5")
	}
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
