package checkout

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
	"github.com/AYOGRAM01/Jollyshop/pkg/outbox"
)

const proofUploadPrefix = "proof_of_payment"

// Service converts a user's cart into a pending order.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, params Params) (*Result, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type proofStore interface {
	Save(prefix, originalName string, src io.Reader) (string, error)
	Remove(rel string) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	repo    Repository
	db      txRunner
	storage proofStore
	events  eventEmitter
	bank    config.BankConfig
	logg    *logger.Logger
}

// ServiceParams bundles the dependencies required to build a checkout service.
type ServiceParams struct {
	Repo    Repository
	DB      txRunner
	Storage proofStore
	Events  eventEmitter
	Bank    config.BankConfig
	Logger  *logger.Logger
}

// NewService constructs a checkout service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("checkout repository is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Storage == nil {
		return nil, fmt.Errorf("proof storage is required")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("event emitter is required")
	}
	return &service{
		repo:    params.Repo,
		db:      params.DB,
		storage: params.Storage,
		events:  params.Events,
		bank:    params.Bank,
		logg:    params.Logger,
	}, nil
}

// Checkout validates inputs, freezes cart prices into a pending order, and
// clears the cart. Everything that touches the database happens in one
// transaction; nothing is written when any validation fails.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, params Params) (*Result, error) {
	address := strings.TrimSpace(params.ShippingAddress)
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	if params.ProofOfPayment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "proof of payment is required")
	}

	proofPath, err := s.storage.Save(proofUploadPrefix, params.ProofOfPaymentName, params.ProofOfPayment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store proof of payment")
	}

	order := models.Order{
		UserID:             userID,
		Status:             enums.OrderPending,
		ShippingAddress:    address,
		ProofOfPaymentPath: proofPath,
		Total:              decimal.Zero,
	}

	// The cart is read inside the transaction so an item added concurrently is
	// either priced into the order or left in the cart, never deleted unpriced.
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		items, err := repo.ListCartItems(ctx, userID)
		if err != nil {
			return fmt.Errorf("list cart items: %w", err)
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		order.Items = make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			if item.Product == nil {
				return pkgerrors.New(pkgerrors.CodeInternal, "cart item missing product")
			}
			line := models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				Price:       item.Product.Price,
				Quantity:    item.Quantity,
			}
			order.Items = append(order.Items, line)
			order.Total = order.Total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		if err := repo.CreateOrder(ctx, &order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if _, err := repo.DeleteCartItems(ctx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Actor:         &outbox.ActorRef{UserID: userID},
			Data: map[string]any{
				"order_id": order.ID,
				"user_id":  userID,
				"total":    order.Total,
			},
			Version: 1,
		})
	})
	if txErr != nil {
		if removeErr := s.storage.Remove(proofPath); removeErr != nil && s.logg != nil {
			s.logg.Warn(ctx, "failed to remove orphaned proof of payment")
		}
		if typed := pkgerrors.As(txErr); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, txErr, "convert cart to order")
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id": order.ID.String(),
			"items":    len(order.Items),
			"total":    order.Total.String(),
		})
		s.logg.Info(logCtx, "cart converted to order")
	}

	return &Result{
		Order: toOrderView(order),
		Bank: BankDetails{
			BankName:      s.bank.Name,
			AccountNumber: s.bank.AccountNumber,
			AccountName:   s.bank.AccountName,
		},
	}, nil
}
