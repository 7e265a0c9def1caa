package inbox

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

// Repository exposes persistence helpers for inbox messages.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, userID uuid.UUID, params listParams) ([]models.InboxMessage, *pagination.Cursor, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, messageID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an inbox repository bound to the provided database.
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

func (r *repositoryImpl) List(ctx context.Context, userID uuid.UUID, params listParams) ([]models.InboxMessage, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).Model(&models.InboxMessage{}).
		Where("user_id = ?", userID)
	if params.UnreadOnly {
		query = query.Where("is_read = false")
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var messages []models.InboxMessage
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

func (r *repositoryImpl) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.InboxMessage{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	return count, err
}

func (r *repositoryImpl) MarkRead(ctx context.Context, userID, messageID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.InboxMessage{}).
		Where("id = ? AND user_id = ?", messageID, userID).
		UpdateColumn("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.InboxMessage{}).
		Where("user_id = ? AND is_read = false", userID).
		UpdateColumn("is_read", true)
	return result.RowsAffected, result.Error
}
