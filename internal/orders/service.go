package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
	"github.com/AYOGRAM01/Jollyshop/pkg/outbox"
	"github.com/AYOGRAM01/Jollyshop/pkg/pagination"
)

// RejectionReason is stamped on every admin-rejected order copy.
const RejectionReason = "Rejected by admin"

const deliveryEstimateDays = 3

// Service drives the order state machine and the archival moves.
type Service interface {
	ListMine(ctx context.Context, userID uuid.UUID, params ListParams) (*ListResult, error)
	ListPending(ctx context.Context, params ListParams) (*ListResult, error)
	ListRejected(ctx context.Context, params ListParams) (*ArchiveListResult, error)
	ListCompleted(ctx context.Context, params ListParams) (*ArchiveListResult, error)
	Approve(ctx context.Context, actor Actor, orderID uuid.UUID) error
	Reject(ctx context.Context, actor Actor, orderID uuid.UUID) error
	Complete(ctx context.Context, actor Actor, orderID uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo   Repository
	db     txRunner
	events eventEmitter
	logg   *logger.Logger
	now    func() time.Time
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo   Repository
	DB     txRunner
	Events eventEmitter
	Logger *logger.Logger
	Now    func() time.Time
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("event emitter is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:   params.Repo,
		db:     params.DB,
		events: params.Events,
		logg:   params.Logger,
		now:    now,
	}, nil
}

func (s *service) ListMine(ctx context.Context, userID uuid.UUID, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	orders, next, err := s.repo.ListByUser(ctx, userID, listParams{Limit: params.Limit, Cursor: cursor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return buildListResult(orders, next), nil
}

func (s *service) ListPending(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	orders, next, err := s.repo.ListByStatus(ctx, enums.OrderPending, listParams{Limit: params.Limit, Cursor: cursor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pending orders")
	}
	return buildListResult(orders, next), nil
}

func (s *service) ListRejected(ctx context.Context, params ListParams) (*ArchiveListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	archived, next, err := s.repo.ListRejected(ctx, listParams{Limit: params.Limit, Cursor: cursor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rejected orders")
	}

	result := &ArchiveListResult{Items: make([]ArchivedOrderView, 0, len(archived))}
	for _, order := range archived {
		result.Items = append(result.Items, toRejectedView(order))
	}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) ListCompleted(ctx context.Context, params ListParams) (*ArchiveListResult, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	archived, next, err := s.repo.ListCompleted(ctx, listParams{Limit: params.Limit, Cursor: cursor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list completed orders")
	}

	result := &ArchiveListResult{Items: make([]ArchivedOrderView, 0, len(archived))}
	for _, order := range archived {
		result.Items = append(result.Items, toCompletedView(order))
	}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

// Approve moves a pending order to approved. The durable inbox message and
// the outbox event ride in the same transaction as the status flip; when the
// guard does not match the call is a silent no-op.
func (s *service) Approve(ctx context.Context, actor Actor, orderID uuid.UUID) error {
	var transitioned bool

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return fmt.Errorf("lock order: %w", err)
		}
		if order.Status != enums.OrderPending {
			return nil
		}

		rows, err := repo.UpdateStatusIf(ctx, orderID, enums.OrderPending, enums.OrderApproved)
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if rows == 0 {
			return nil
		}
		transitioned = true

		user, err := repo.FindUserByID(ctx, order.UserID)
		if err != nil {
			return fmt.Errorf("find order user: %w", err)
		}

		now := s.now()
		deliveryDate := now.AddDate(0, 0, deliveryEstimateDays)
		message := models.InboxMessage{
			UserID:      order.UserID,
			OrderID:     &order.ID,
			MessageType: enums.InboxOrderUpdate,
			Subject:     fmt.Sprintf("Order #%s Approved - Delivery Scheduled", order.ID),
			Body: fmt.Sprintf(
				"Hello %s,\n\nYour order #%s has been approved! Your package will be delivered within %d days (by %s).\n\nDelivery Address:\n%s\n\nThank you for shopping with us!",
				user.FirstName, order.ID, deliveryEstimateDays, deliveryDate.Format("January 02, 2006"), order.ShippingAddress,
			),
		}
		if err := repo.CreateInboxMessage(ctx, &message); err != nil {
			return fmt.Errorf("create inbox message: %w", err)
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderApproved,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role.String()},
			Data: approvedEventData{
				OrderID:         order.ID,
				UserID:          order.UserID,
				Email:           user.Email,
				FirstName:       user.FirstName,
				ShippingAddress: order.ShippingAddress,
			},
			Version:    1,
			OccurredAt: now,
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve order")
	}

	if transitioned && s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, orderID.String()), "order approved")
	}
	return nil
}

// Reject moves a pending order into the rejected archive and deletes the
// live row, all in one transaction. Guard mismatches are silent no-ops.
func (s *service) Reject(ctx context.Context, actor Actor, orderID uuid.UUID) error {
	var transitioned bool

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return fmt.Errorf("lock order: %w", err)
		}
		if order.Status != enums.OrderPending {
			return nil
		}

		archived := models.RejectedOrder{
			OriginalOrderID:    order.ID,
			UserID:             order.UserID,
			ShippingAddress:    order.ShippingAddress,
			ProofOfPaymentPath: order.ProofOfPaymentPath,
			Total:              order.Total,
			Reason:             RejectionReason,
			OrderedAt:          order.CreatedAt,
			RejectedAt:         s.now(),
			Items:              make([]models.RejectedOrderItem, 0, len(order.Items)),
		}
		for _, item := range order.Items {
			archived.Items = append(archived.Items, models.RejectedOrderItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Price:       item.Price,
				Quantity:    item.Quantity,
			})
		}

		if err := repo.CreateRejectedOrder(ctx, &archived); err != nil {
			return fmt.Errorf("archive rejected order: %w", err)
		}
		if err := repo.DeleteOrder(ctx, order.ID); err != nil {
			return fmt.Errorf("delete live order: %w", err)
		}
		transitioned = true

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderRejected,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role.String()},
			Data: map[string]any{
				"order_id": order.ID,
				"user_id":  order.UserID,
				"reason":   RejectionReason,
			},
			Version: 1,
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reject order")
	}

	if transitioned && s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, orderID.String()), "order rejected and archived")
	}
	return nil
}

// Complete moves an approved order into the completed archive and deletes
// the live row, all in one transaction. Guard mismatches are silent no-ops.
func (s *service) Complete(ctx context.Context, actor Actor, orderID uuid.UUID) error {
	var transitioned bool

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return fmt.Errorf("lock order: %w", err)
		}
		if order.Status != enums.OrderApproved {
			return nil
		}

		archived := models.CompletedOrder{
			OriginalOrderID:    order.ID,
			UserID:             order.UserID,
			ShippingAddress:    order.ShippingAddress,
			ProofOfPaymentPath: order.ProofOfPaymentPath,
			Total:              order.Total,
			OrderedAt:          order.CreatedAt,
			CompletedAt:        s.now(),
			Items:              make([]models.CompletedOrderItem, 0, len(order.Items)),
		}
		for _, item := range order.Items {
			archived.Items = append(archived.Items, models.CompletedOrderItem{
				ProductID:   item.ProductID,
				ProductName: item.ProductName,
				Price:       item.Price,
				Quantity:    item.Quantity,
			})
		}

		if err := repo.CreateCompletedOrder(ctx, &archived); err != nil {
			return fmt.Errorf("archive completed order: %w", err)
		}
		if err := repo.DeleteOrder(ctx, order.ID); err != nil {
			return fmt.Errorf("delete live order: %w", err)
		}
		transitioned = true

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCompleted,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: actor.UserID, Role: actor.Role.String()},
			Data: map[string]any{
				"order_id": order.ID,
				"user_id":  order.UserID,
			},
			Version: 1,
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "complete order")
	}

	if transitioned && s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, orderID.String()), "order completed and archived")
	}
	return nil
}

type approvedEventData struct {
	OrderID         uuid.UUID `json:"order_id"`
	UserID          uuid.UUID `json:"user_id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name"`
	ShippingAddress string    `json:"shipping_address"`
}

func buildListResult(orders []models.Order, next *pagination.Cursor) *ListResult {
	result := &ListResult{Items: make([]OrderView, 0, len(orders))}
	for _, order := range orders {
		result.Items = append(result.Items, toOrderView(order))
	}
	if next != nil {
		result.Cursor = pagination.EncodeCursor(*next)
	}
	return result
}
