package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
)

// Repository exposes persistence helpers for the shopping cart.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	FindProductByID(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error
	SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (int64, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (int64, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a cart repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ListItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at ASC").
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

// AddItem inserts a cart line or bumps the quantity when one already exists.
func (r *repositoryImpl) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
	`, userID, productID, quantity).Error
}

func (r *repositoryImpl) SetQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", quantity)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
