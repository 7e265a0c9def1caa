package contact

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/outbox"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

type fakeRepository struct {
	createFn   func(ctx context.Context, message *models.ContactMessage) error
	listFn     func(ctx context.Context, params listParams) ([]models.ContactMessage, *pagination.Cursor, error)
	markReadFn func(ctx context.Context, id uuid.UUID) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if f.createFn != nil {
		return f.createFn(ctx, message)
	}
	message.ID = uuid.New()
	return nil
}

func (f *fakeRepository) List(ctx context.Context, params listParams) ([]models.ContactMessage, *pagination.Cursor, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, nil, nil
}

func (f *fakeRepository) CountUnread(ctx context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeRepository) MarkRead(ctx context.Context, id uuid.UUID) (int64, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, id)
	}
	return 1, nil
}

type fakeTxRunner struct {
	err error
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(&gorm.DB{})
}

type fakeEmitter struct {
	events []outbox.DomainEvent
}

func (f *fakeEmitter) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	f.events = append(f.events, event)
	return nil
}

func newTestService(t *testing.T, repo Repository, emitter *fakeEmitter) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo, DB: &fakeTxRunner{}, Events: emitter})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestCreate_EmitsContactPostedEvent(t *testing.T) {
	emitter := &fakeEmitter{}
	svc := newTestService(t, &fakeRepository{}, emitter)

	view, err := svc.Create(context.Background(), CreateParams{
		Name:    "Ada Obi",
		Email:   "ada@example.com",
		Subject: "Delivery question",
		Body:    "When will my order arrive?",
	})
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}
	if view.Name != "Ada Obi" {
		t.Fatalf("unexpected view %+v", view)
	}
	if len(emitter.events) != 1 || emitter.events[0].EventType != enums.EventContactPosted {
		t.Fatalf("expected one contact_posted event, got %+v", emitter.events)
	}
}

func TestCreate_InvalidEmail(t *testing.T) {
	svc := newTestService(t, &fakeRepository{}, &fakeEmitter{})

	_, err := svc.Create(context.Background(), CreateParams{
		Name:    "Ada Obi",
		Email:   "not-an-email",
		Subject: "Hello",
		Body:    "Hi",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", pkgerrors.As(err).Code())
	}
}

func TestMarkRead_Missing(t *testing.T) {
	repo := &fakeRepository{
		markReadFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
			return 0, nil
		},
	}
	svc := newTestService(t, repo, &fakeEmitter{})

	err := svc.MarkRead(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %s", pkgerrors.As(err).Code())
	}
}
