package orders

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/outbox"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

type fakeRepository struct {
	findForUpdateFn  func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	updateStatusFn   func(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error)
	deleteOrderFn    func(ctx context.Context, id uuid.UUID) error
	createRejectedFn func(ctx context.Context, archived *models.RejectedOrder) error
	createCompleteFn func(ctx context.Context, archived *models.CompletedOrder) error
	createInboxFn    func(ctx context.Context, message *models.InboxMessage) error
	findUserFn       func(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) ListByUser(ctx context.Context, userID uuid.UUID, params listParams) ([]models.Order, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeRepository) ListByStatus(ctx context.Context, status enums.OrderStatus, params listParams) ([]models.Order, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if f.findForUpdateFn != nil {
		return f.findForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error) {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, from, to)
	}
	return 1, nil
}

func (f *fakeRepository) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if f.deleteOrderFn != nil {
		return f.deleteOrderFn(ctx, id)
	}
	return nil
}

func (f *fakeRepository) CreateRejectedOrder(ctx context.Context, archived *models.RejectedOrder) error {
	if f.createRejectedFn != nil {
		return f.createRejectedFn(ctx, archived)
	}
	return nil
}

func (f *fakeRepository) CreateCompletedOrder(ctx context.Context, archived *models.CompletedOrder) error {
	if f.createCompleteFn != nil {
		return f.createCompleteFn(ctx, archived)
	}
	return nil
}

func (f *fakeRepository) CreateInboxMessage(ctx context.Context, message *models.InboxMessage) error {
	if f.createInboxFn != nil {
		return f.createInboxFn(ctx, message)
	}
	return nil
}

func (f *fakeRepository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.findUserFn != nil {
		return f.findUserFn(ctx, id)
	}
	return &models.User{ID: id, Email: "ada@example.com", FirstName: "Ada"}, nil
}

func (f *fakeRepository) ListRejected(ctx context.Context, params listParams) ([]models.RejectedOrder, *pagination.Cursor, error) {
	return nil, nil, nil
}

func (f *fakeRepository) ListCompleted(ctx context.Context, params listParams) ([]models.CompletedOrder, *pagination.Cursor, error) {
	return nil, nil, nil
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
	err    error
}

func (f *fakeEmitter) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func orderFixture(status enums.OrderStatus) *models.Order {
	orderID := uuid.New()
	return &models.Order{
		ID:                 orderID,
		UserID:             uuid.New(),
		Status:             status,
		ShippingAddress:    "12 Lagos Rd",
		ProofOfPaymentPath: "proof_of_payment/2026/08/receipt.png",
		Total:              decimal.NewFromInt(2500),
		Items: []models.OrderItem{
			{OrderID: orderID, ProductID: uuid.New(), ProductName: "Talking Drum", Price: decimal.NewFromInt(1000), Quantity: 2},
			{OrderID: orderID, ProductID: uuid.New(), ProductName: "Bead Necklace", Price: decimal.NewFromInt(500), Quantity: 1},
		},
		CreatedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
}

func newTestService(t *testing.T, repo Repository, emitter *fakeEmitter, now time.Time) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		DB:     &fakeTxRunner{},
		Events: emitter,
		Now:    func() time.Time { return now },
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func adminActor() Actor {
	return Actor{UserID: uuid.New(), Role: enums.RoleAdmin}
}

func TestApprove_TransitionsAndWritesInboxMessage(t *testing.T) {
	order := orderFixture(enums.OrderPending)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	var inbox []models.InboxMessage
	repo := &fakeRepository{
		findForUpdateFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return order, nil
		},
		createInboxFn: func(ctx context.Context, message *models.InboxMessage) error {
			inbox = append(inbox, *message)
			return nil
		},
	}
	emitter := &fakeEmitter{}
	svc := newTestService(t, repo, emitter, now)

	if err := svc.Approve(context.Background(), adminActor(), order.ID); err != nil {
		t.Fatalf("unexpected approve error: %v", err)
	}

	if len(inbox) != 1 {
		t.Fatalf("expected exactly one inbox message, got %d", len(inbox))
	}
	message := inbox[0]
	wantSubject := fmt.Sprintf("Order #%s Approved - Delivery Scheduled", order.ID)
	if message.Subject != wantSubject {
		t.Fatalf("unexpected subject %q", message.Subject)
	}
	if message.UserID != order.UserID {
		t.Fatal("inbox message must target the order owner")
	}
	if message.OrderID == nil || *message.OrderID != order.ID {
		t.Fatal("inbox message must reference the order")
	}
	if !strings.Contains(message.Body, "Hello Ada,") {
		t.Fatalf("body should greet the customer by first name: %q", message.Body)
	}
	if !strings.Contains(message.Body, "delivered within 3 days (by August 31, 2026)") {
		t.Fatalf("body should carry the delivery estimate: %q", message.Body)
	}
	if !strings.Contains(message.Body, "12 Lagos Rd") {
		t.Fatalf("body should carry the delivery address: %q", message.Body)
	}

	if len(emitter.events) != 1 || emitter.events[0].EventType != enums.EventOrderApproved {
		t.Fatalf("expected one order_approved event, got %+v", emitter.events)
	}
}

func TestApprove_NonPendingIsSilentNoOp(t *testing.T) {
	order := orderFixture(enums.OrderApproved)

	inboxWrites := 0
	repo := &fakeRepository{
		findForUpdateFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return order, nil
		},
		updateStatusFn: func(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error) {
			t.Fatal("status update must not run when the guard does not match")
			return 0, nil
		},
		createInboxFn: func(ctx context.Context, message *models.InboxMessage) error {
			inboxWrites++
			return nil
		},
	}
	emitter := &fakeEmitter{}
	svc := newTestService(t, repo, emitter, time.Now())

	if err := svc.Approve(context.Background(), adminActor(), order.ID); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if inboxWrites != 0 {
		t.Fatal("no inbox message should be written on a no-op")
	}
	if len(emitter.events) != 0 {
		t.Fatal("no event should be emitted on a no-op")
	}
}

func TestApprove_ConcurrentLoserWritesNothing(t *testing.T) {
	order := orderFixture(enums.OrderPending)

	inboxWrites := 0
	repo := &fakeRepository{
		findForUpdateFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return order, nil
		},
		updateStatusFn: func(ctx context.Context, id uuid.UUID, from, to enums.OrderStatus) (int64, error) {
			// another transaction already flipped the status
			return 0, nil
		},
		createInboxFn: func(ctx context.Context, message *models.InboxMessage) error {
			inboxWrites++
			return nil
		},
	}
	emitter := &fakeEmitter{}
	svc := newTestService(t, repo, emitter, time.Now())

	if err := svc.Approve(context.Background(), adminActor(), order.ID); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
	if inboxWrites != 0 || len(emitter.events) != 0 {
		t.Fatal("losing the compare-and-set must write nothing")
	}
}

func TestApprove_MissingOrder(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, &fakeEmitter{}, time.Now())

	err := svc.Approve(context.Background(), adminActor(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %s", pkgerrors.As(err).Code())
	}
}

func TestReject_ArchivesWithItemsAndDeletesLiveOrder(t *testing.T) {
	order := orderFixture(enums.OrderPending)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	var archived *models.RejectedOrder
	deleted := false
	repo := &fakeRepository{
		findForUpdateFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return order, nil
		},
		createRejectedFn: func(ctx context.Context, r *models.RejectedOrder) error {
			archived = r
			return nil
		},
		deleteOrderFn: func(ctx context.Context, id uuid.UUID) error {
			if archived == nil {
				t.Fatal("archive copy must be written before the live order is deleted")
			}
			if id != order.ID {
				t.Fatalf("unexpected delete target %s", id)
			}
			deleted = true
			return nil
		},
	}
	emitter := &fakeEmitter{}
	svc := newTestService(t, repo, emitter, now)

	if err := svc.Reject(context.Background(), adminActor(), order.ID); err != nil {
		t.Fatalf("unexpected reject error: %v", err)
	}

	if archived == nil {
		t.Fatal("expected a rejected archive copy")
	}
	if archived.OriginalOrderID != order.ID {
		t.Fatal("archive copy must point back at the original order")
	}
	if archived.Reason != "Rejected by admin" {
		t.Fatalf("unexpected reason %q", archived.Reason)
	}
	if len(archived.Items) != len(order.Items) {
		t.Fatalf("expected %d preserved items, got %d", len(order.Items), len(archived.Items))
	}
	if !archived.Items[0].Price.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("archived line must keep the frozen price, got %s", archived.Items[0].Price)
	}
	if !archived.OrderedAt.Equal(order.CreatedAt) {
		t.Fatal("archive copy must keep the original order time")
	}
	if !deleted {
		t.Fatal("live order must be deleted in the same transaction")
	}
	if len(emitter.events) != 1 || emitter.events[0].EventType != enums.EventOrderRejected {
		t.Fatalf("expected one order_rejected event, got %+v", emitter.events)
	}
}

func TestReject_NonPendingIsSilentNoOp(t *testing.T) {
	order := orderFixture(enums.OrderApproved)

	repo := &fakeRepository{
		findForUpdateFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return order, nil
		},
		createRejectedFn: func(ctx context.Context, r *models.RejectedOrder) error {
			t.Fatal("nothing should be archived when the guard does not match")
			return nil
		},
		deleteOrderFn: func(ctx context.Context, id uuid.UUID) error {
			t.Fatal("nothing should be deleted when the guard does not match")
			return nil
		},
	}
	svc := newTestService(t, repo, &fakeEmitter{}, time.Now())

	if err := svc.Reject(context.Background(), adminActor(), order.ID); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}

func TestComplete_ArchivesApprovedOrder(t *testing.T) {
	order := orderFixture(enums.OrderApproved)
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	var archived *models.CompletedOrder
	deleted := false
	repo := &fakeRepository{
		findForUpdateFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return order, nil
		},
		createCompleteFn: func(ctx context.Context, c *models.CompletedOrder) error {
			archived = c
			return nil
		},
		deleteOrderFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	emitter := &fakeEmitter{}
	svc := newTestService(t, repo, emitter, now)

	if err := svc.Complete(context.Background(), adminActor(), order.ID); err != nil {
		t.Fatalf("unexpected complete error: %v", err)
	}

	if archived == nil {
		t.Fatal("expected a completed archive copy")
	}
	if archived.OriginalOrderID != order.ID {
		t.Fatal("archive copy must point back at the original order")
	}
	if len(archived.Items) != len(order.Items) {
		t.Fatalf("expected %d preserved items, got %d", len(order.Items), len(archived.Items))
	}
	if !archived.Total.Equal(order.Total) {
		t.Fatalf("archive copy must keep the frozen total, got %s", archived.Total)
	}
	if !deleted {
		t.Fatal("live order must be deleted in the same transaction")
	}
	if len(emitter.events) != 1 || emitter.events[0].EventType != enums.EventOrderCompleted {
		t.Fatalf("expected one order_completed event, got %+v", emitter.events)
	}
}

func TestComplete_PendingIsSilentNoOp(t *testing.T) {
	order := orderFixture(enums.OrderPending)

	repo := &fakeRepository{
		findForUpdateFn: func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return order, nil
		},
		createCompleteFn: func(ctx context.Context, c *models.CompletedOrder) error {
			t.Fatal("nothing should be archived when the guard does not match")
			return nil
		},
	}
	svc := newTestService(t, repo, &fakeEmitter{}, time.Now())

	if err := svc.Complete(context.Background(), adminActor(), order.ID); err != nil {
		t.Fatalf("expected silent no-op, got %v", err)
	}
}
