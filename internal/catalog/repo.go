package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

// Repository exposes persistence helpers for the catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindCategoryByName(ctx context.Context, name enums.Category) (*models.Category, error)
	ListProducts(ctx context.Context, params listProductsParams) ([]models.Product, *pagination.Cursor, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listProductsParams struct {
	CategoryID *uuid.UUID
	Limit      int
	Cursor     *pagination.Cursor
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) FindCategoryByName(ctx context.Context, name enums.Category) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) ListProducts(ctx context.Context, params listProductsParams) ([]models.Product, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Category")
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var products []models.Product
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&products).Error; err != nil {
		return nil, nil, err
	}

	if len(products) > normalized {
		products = products[:normalized]
		last := products[normalized-1]
		return products, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return products, nil, nil
}

func (r *repositoryImpl) FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repositoryImpl) CreateProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *repositoryImpl) UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	return result.RowsAffected, result.Error
}
