package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/outbox"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

// CreateParams carries a public contact form submission.
type CreateParams struct {
	Name    string `validate:"required,max=120"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required,max=200"`
	Body    string `validate:"required,max=5000"`
}

// ListParams pages the admin view of contact messages.
type ListParams struct {
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// MessageView is one contact message as returned to admins.
type MessageView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResult carries a page of contact messages plus the next cursor.
type ListResult struct {
	Items  []MessageView `json:"items"`
	Cursor string        `json:"cursor,omitempty"`
}

// Service handles the public contact form and its admin surface.
type Service interface {
	Create(ctx context.Context, params CreateParams) (*MessageView, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo     Repository
	db       txRunner
	events   eventEmitter
	validate *validator.Validate
}

// ServiceParams bundles the dependencies required to build a contact service.
type ServiceParams struct {
	Repo   Repository
	DB     txRunner
	Events eventEmitter
}

// NewService constructs a contact service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("contact repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("event emitter is required")
	}
	return &service{
		repo:     params.Repo,
		db:       params.DB,
		events:   params.Events,
		validate: validator.New(),
	}, nil
}

func (s *service) Create(ctx context.Context, params CreateParams) (*MessageView, error) {
	params.Name = strings.TrimSpace(params.Name)
	params.Email = strings.TrimSpace(params.Email)
	params.Subject = strings.TrimSpace(params.Subject)
	params.Body = strings.TrimSpace(params.Body)

	if err := s.validate.Struct(params); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid contact message")
	}

	message := models.ContactMessage{
		Name:    params.Name,
		Email:   params.Email,
		Subject: params.Subject,
		Body:    params.Body,
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, &message); err != nil {
			return fmt.Errorf("create contact message: %w", err)
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventContactPosted,
			AggregateType: enums.AggregateContact,
			AggregateID:   message.ID,
			Data: map[string]any{
				"message_id": message.ID,
				"email":      message.Email,
				"subject":    message.Subject,
			},
			Version: 1,
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "submit contact message")
	}

	view := toMessageView(message)
	return &view, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	messages, next, err := s.repo.List(ctx, listParams{
		Limit:      params.Limit,
		Cursor:     cursor,
		UnreadOnly: params.UnreadOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list contact messages")
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

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	rows, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark contact message read")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "contact message not found")
	}
	return nil
}

func toMessageView(message models.ContactMessage) MessageView {
	return MessageView{
		ID:        message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Subject:   message.Subject,
		Body:      message.Body,
		IsRead:    message.IsRead,
		CreatedAt: message.CreatedAt,
	}
}
