package contact

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

// Repository exposes persistence helpers for contact messages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, message *models.ContactMessage) error
	List(ctx context.Context, params listParams) ([]models.ContactMessage, *pagination.Cursor, error)
	CountUnread(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a contact repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

type listParams struct {
	Limit      int
	Cursor     *pagination.Cursor
	UnreadOnly bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listParams) ([]models.ContactMessage, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if params.UnreadOnly {
		query = query.Where("is_read = false")
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, nil, err
	}

	if len(messages) > normalized {
		messages = messages[:normalized]
		last := messages[normalized-1]
		return messages, &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}, nil
	}
	return messages, nil, nil
}

func (r *repositoryImpl) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("is_read = false").
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) MarkRead(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("id = ?", id).
		UpdateColumn("is_read", true)
	return result.RowsAffected, result.Error
}
