package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
)

// Repository exposes persistence helpers for wishlist items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error)
	FindProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	Add(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a wishlist repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *repositoryImpl) FindProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", productID).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Add inserts the (user, product) pair, returning zero rows when it already
// exists so the caller can treat the save as idempotent.
func (r *repositoryImpl) Add(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO wishlist_items (user_id, product_id)
		 VALUES (?, ?)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID,
	)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Remove(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	return result.RowsAffected, result.Error
}
