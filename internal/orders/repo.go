package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

// Repository exposes persistence helpers for the order lifecycle.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByUser(ctx context.Context, userID uuid.UUID, params listParams) ([]models.Order, *pagination.Cursor, error)
	ListByStatus(ctx context.Context, status enums.OrderStatus, params listParams) ([]models.Order, *pagination.Cursor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	CreateRejectedOrder(ctx context.Context, archived *models.RejectedOrder) error
	CreateCompletedOrder(ctx context.Context, archived *models.CompletedOrder) error
	CreateInboxMessage(ctx context.Context, message *models.InboxMessage) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListRejected(ctx context.Context, params listParams) ([]models.RejectedOrder, *pagination.Cursor, error)
	ListCompleted(ctx context.Context, params listParams) ([]models.CompletedOrder, *pagination.Cursor, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an orders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listParams struct {
	Limit  int
	Cursor *pagination.Cursor
	UserID *uuid.UUID
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, params listParams) ([]models.Order, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID)
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	if len(orders) > normalized {
		orders = orders[:normalized]
		last := orders[normalized-1]
		return orders, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return orders, nil, nil
}

func (r *repositoryImpl) ListByStatus(ctx context.Context, status enums.OrderStatus, params listParams) ([]models.Order, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.Order{}).
		Preload("Items").
		Where("status = ?", status)
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	if len(orders) > normalized {
		orders = orders[:normalized]
		last := orders[normalized-1]
		return orders, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return orders, nil, nil
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the order row for the duration of the surrounding
// transaction, then loads its items separately.
func (r *repositoryImpl) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("created_at ASC").
		Find(&order.Items).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatusIf performs a compare-and-set on the status column. The caller
// must treat zero rows affected as "guard did not match".
func (r *repositoryImpl) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumn("status", to)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Order{}).Error
}

func (r *repositoryImpl) CreateRejectedOrder(ctx context.Context, archived *models.RejectedOrder) error {
	return r.db.WithContext(ctx).Create(archived).Error
}

func (r *repositoryImpl) CreateCompletedOrder(ctx context.Context, archived *models.CompletedOrder) error {
	return r.db.WithContext(ctx).Create(archived).Error
}

func (r *repositoryImpl) CreateInboxMessage(ctx context.Context, message *models.InboxMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *repositoryImpl) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repositoryImpl) ListRejected(ctx context.Context, params listParams) ([]models.RejectedOrder, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.RejectedOrder{}).Preload("Items")
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Cursor != nil {
		query = query.Where("(rejected_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var archived []models.RejectedOrder
	if err := query.Order("rejected_at DESC, id DESC").Limit(limit).Find(&archived).Error; err != nil {
		return nil, nil, err
	}

	if len(archived) > normalized {
		archived = archived[:normalized]
		last := archived[normalized-1]
		return archived, &pagination.Cursor{CreatedAt: last.RejectedAt, ID: last.ID}, nil
	}
	return archived, nil, nil
}

func (r *repositoryImpl) ListCompleted(ctx context.Context, params listParams) ([]models.CompletedOrder, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.CompletedOrder{}).Preload("Items")
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.Cursor != nil {
		query = query.Where("(completed_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var archived []models.CompletedOrder
	if err := query.Order("completed_at DESC, id DESC").Limit(limit).Find(&archived).Error; err != nil {
		return nil, nil, err
	}

	if len(archived) > normalized {
		archived = archived[:normalized]
		last := archived[normalized-1]
		return archived, &pagination.Cursor{CreatedAt: last.CompletedAt, ID: last.ID}, nil
	}
	return archived, nil, nil
}
