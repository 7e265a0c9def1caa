package inbox

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

// Service serves a user's durable notification inbox.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, params ListParams) (*ListResult, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, messageID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo Repository
}

// NewService constructs an inbox service with the provided dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inbox repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	messages, next, err := s.repo.List(ctx, userID, listParams{
		Limit:      params.Limit,
		Cursor:     cursor,
		UnreadOnly: params.UnreadOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list inbox messages")
	}

	result := &ListResult{Items: make([]MessageView, 0, len(messages))}
	for _, message := range messages {
		result.Items = append(result.Items, toMessageView(message))
	}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count unread messages")
	}
	return count, nil
}

// MarkRead flips a single message. Scoping by user means a message belonging
// to someone else reads as not found rather than forbidden.
func (s *service) MarkRead(ctx context.Context, userID, messageID uuid.UUID) error {
	rows, err := s.repo.MarkRead(ctx, userID, messageID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark message read")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inbox message not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	rows, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark all messages read")
	}
	return rows, nil
}
