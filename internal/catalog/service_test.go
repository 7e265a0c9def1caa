package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

type fakeRepository struct {
	findCategoryFn  func(ctx context.Context, name enums.Category) (*models.Category, error)
	createProductFn func(ctx context.Context, product *models.Product) error
	updateProductFn func(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	findProductFn   func(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) FindCategoryByName(ctx context.Context, name enums.Category) (*models.Category, error) {
	if f.findCategoryFn != nil {
		return f.findCategoryFn(ctx, name)
	}
	return &models.Category{ID: uuid.New(), Name: name}, nil
}

func (f *fakeRepository) ListProducts(ctx context.Context, params listProductsParams) ([]models.Product, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if f.findProductFn != nil {
		return f.findProductFn(ctx, id)
	}
	return &models.Product{ID: id}, nil
}

func (f *fakeRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	if f.createProductFn != nil {
		return f.createProductFn(ctx, product)
	}
	product.ID = uuid.New()
	return nil
}

func (f *fakeRepository) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	if f.updateProductFn != nil {
		return f.updateProductFn(ctx, id, updates)
	}
	return 1, nil
}

func (f *fakeRepository) DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error) {
	return 1, nil
}

func newCatalogService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestCreateProduct_KeepsFractionalDiscountAndRating(t *testing.T) {
	var created *models.Product
	repo := &fakeRepository{
		createProductFn: func(ctx context.Context, product *models.Product) error {
			product.ID = uuid.New()
			created = product
			return nil
		},
	}
	svc := newCatalogService(t, repo)

	view, err := svc.CreateProduct(context.Background(), CreateProductParams{
		Category:           string(enums.CategoryAffordable),
		Name:               "Solar Lantern",
		Price:              decimal.NewFromInt(4500),
		DiscountPercentage: decimal.RequireFromString("12.5"),
		Rating:             decimal.RequireFromString("4.5"),
	})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if created == nil {
		t.Fatal("expected a product to be created")
	}
	if !created.DiscountPercentage.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected discount 12.5, got %s", created.DiscountPercentage)
	}
	if !created.Rating.Equal(decimal.RequireFromString("4.5")) {
		t.Fatalf("expected rating 4.5, got %s", created.Rating)
	}
	if !view.Rating.Equal(decimal.RequireFromString("4.5")) {
		t.Fatalf("expected view rating 4.5, got %s", view.Rating)
	}
}

func TestCreateProduct_RejectsOutOfRangeDiscountAndRating(t *testing.T) {
	svc := newCatalogService(t, &fakeRepository{})

	_, err := svc.CreateProduct(context.Background(), CreateProductParams{
		Category:           string(enums.CategoryAffordable),
		Name:               "Solar Lantern",
		Price:              decimal.NewFromInt(4500),
		DiscountPercentage: decimal.RequireFromString("100.01"),
	})
	if err == nil {
		t.Fatal("expected validation error for discount above 100")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", pkgerrors.As(err).Code())
	}

	_, err = svc.CreateProduct(context.Background(), CreateProductParams{
		Category: string(enums.CategoryAffordable),
		Name:     "Solar Lantern",
		Price:    decimal.NewFromInt(4500),
		Rating:   decimal.RequireFromString("5.1"),
	})
	if err == nil {
		t.Fatal("expected validation error for rating above 5")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", pkgerrors.As(err).Code())
	}
}

func TestUpdateProduct_ValidatesDiscountRange(t *testing.T) {
	updated := map[string]any{}
	repo := &fakeRepository{
		updateProductFn: func(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
			updated = updates
			return 1, nil
		},
	}
	svc := newCatalogService(t, repo)

	negative := decimal.RequireFromString("-1")
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductParams{
		DiscountPercentage: &negative,
	})
	if err == nil {
		t.Fatal("expected validation error for negative discount")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", pkgerrors.As(err).Code())
	}

	half := decimal.RequireFromString("7.5")
	if _, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductParams{
		DiscountPercentage: &half,
	}); err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}
	got, ok := updated["discount_percentage"].(decimal.Decimal)
	if !ok || !got.Equal(half) {
		t.Fatalf("expected discount 7.5 in updates, got %v", updated["discount_percentage"])
	}
}
