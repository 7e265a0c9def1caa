package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
)

type fakeRepository struct {
	listFn        func(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	findProductFn func(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	addFn         func(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	removeFn      func(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	if f.listFn != nil {
		return f.listFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRepository) FindProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if f.findProductFn != nil {
		return f.findProductFn(ctx, productID)
	}
	return &models.Product{ID: productID, Name: "Talking Drum", Price: decimal.NewFromInt(1000), InStock: true}, nil
}

func (f *fakeRepository) Add(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	if f.addFn != nil {
		return f.addFn(ctx, userID, productID)
	}
	return 1, nil
}

func (f *fakeRepository) Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	if f.removeFn != nil {
		return f.removeFn(ctx, userID, productID)
	}
	return 1, nil
}

func TestAdd_UnknownProduct(t *testing.T) {
	repo := &fakeRepository{
		findProductFn: func(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	err = svc.Add(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %s", pkgerrors.As(err).Code())
	}
}

func TestAdd_DuplicateIsIdempotent(t *testing.T) {
	repo := &fakeRepository{
		addFn: func(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
			// conflict target swallowed the insert
			return 0, nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	if err := svc.Add(context.Background(), uuid.New(), uuid.New()); err != nil {
		t.Fatalf("duplicate save should be a no-op, got %v", err)
	}
}

func TestRemove_MissingItem(t *testing.T) {
	repo := &fakeRepository{
		removeFn: func(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
			return 0, nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	err = svc.Remove(context.Background(), uuid.New(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %s", pkgerrors.As(err).Code())
	}
}

func TestList_ProjectsProductFields(t *testing.T) {
	userID := uuid.New()
	product := &models.Product{ID: uuid.New(), Name: "Bead Necklace", Price: decimal.NewFromInt(500), InStock: true}
	repo := &fakeRepository{
		listFn: func(ctx context.Context, id uuid.UUID) ([]models.WishlistItem, error) {
			return []models.WishlistItem{{UserID: userID, ProductID: product.ID, Product: product}}, nil
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}

	views, err := svc.List(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one item, got %d", len(views))
	}
	if views[0].Name != "Bead Necklace" || !views[0].Price.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected view %+v", views[0])
	}
}
