package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
	"github.com/AYOGRAM01/Jollyshop/pkg/outbox"
)

type fakeRepository struct {
	txRepo            Repository
	listCartItemsFn   func(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	createOrderFn     func(ctx context.Context, order *models.Order) error
	deleteCartItemsFn func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	if f.txRepo != nil {
		return f.txRepo
	}
	return f
}

func (f *fakeRepository) ListCartItems(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	if f.listCartItemsFn != nil {
		return f.listCartItemsFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	if f.createOrderFn != nil {
		return f.createOrderFn(ctx, order)
	}
	order.ID = uuid.New()
	return nil
}

func (f *fakeRepository) DeleteCartItems(ctx context.Context, userID uuid.UUID) (int64, error) {
	if f.deleteCartItemsFn != nil {
		return f.deleteCartItemsFn(ctx, userID)
	}
	return 0, nil
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

type fakeStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeStore) Save(prefix, originalName string, src io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	path := prefix + "/" + originalName
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeStore) Remove(rel string) error {
	f.removed = append(f.removed, rel)
	return nil
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

func cartFixture(userID uuid.UUID) []models.CartItem {
	lagosDrum := &models.Product{ID: uuid.New(), Name: "Talking Drum", Price: decimal.NewFromInt(1000)}
	beadNecklace := &models.Product{ID: uuid.New(), Name: "Bead Necklace", Price: decimal.NewFromInt(500)}
	return []models.CartItem{
		{UserID: userID, ProductID: lagosDrum.ID, Product: lagosDrum, Quantity: 2},
		{UserID: userID, ProductID: beadNecklace.ID, Product: beadNecklace, Quantity: 1},
	}
}

func newService(t *testing.T, repo Repository, store *fakeStore, emitter *fakeEmitter, tx txRunner) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		DB:      tx,
		Storage: store,
		Events:  emitter,
		Bank: config.BankConfig{
			Name:          "GTBank",
			AccountNumber: "0123456789",
			AccountName:   "JollyShop Nigeria Ltd",
		},
	})
	if err != nil {
		t.Fatalf("NewService returned error: %v", err)
	}
	return svc
}

func TestCheckout_MissingAddress(t *testing.T) {
	created := 0
	repo := &fakeRepository{
		createOrderFn: func(ctx context.Context, order *models.Order) error {
			created++
			return nil
		},
	}
	store := &fakeStore{}
	svc := newService(t, repo, store, &fakeEmitter{}, &fakeTxRunner{})

	_, err := svc.Checkout(context.Background(), uuid.New(), Params{
		ProofOfPayment:     strings.NewReader("receipt"),
		ProofOfPaymentName: "receipt.png",
	})
	if err == nil {
		t.Fatal("expected validation error for missing address")
	}
	typed := pkgerrors.As(err)
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", typed.Code())
	}
	if typed.Message() != "shipping address is required" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if created != 0 || len(store.saved) != 0 {
		t.Fatal("nothing should be written when the address is missing")
	}
}

func TestCheckout_MissingProofOfPayment(t *testing.T) {
	store := &fakeStore{}
	svc := newService(t, &fakeRepository{}, store, &fakeEmitter{}, &fakeTxRunner{})

	_, err := svc.Checkout(context.Background(), uuid.New(), Params{
		ShippingAddress: "12 Lagos Rd",
	})
	if err == nil {
		t.Fatal("expected validation error for missing proof")
	}
	typed := pkgerrors.As(err)
	if typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", typed.Code())
	}
	if typed.Message() != "proof of payment is required" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if len(store.saved) != 0 {
		t.Fatal("no file should be stored when the proof is missing")
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	created := 0
	repo := &fakeRepository{
		listCartItemsFn: func(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
			return nil, nil
		},
		createOrderFn: func(ctx context.Context, order *models.Order) error {
			created++
			return nil
		},
	}
	store := &fakeStore{}
	svc := newService(t, repo, store, &fakeEmitter{}, &fakeTxRunner{})

	_, err := svc.Checkout(context.Background(), uuid.New(), Params{
		ShippingAddress:    "12 Lagos Rd",
		ProofOfPayment:     strings.NewReader("receipt"),
		ProofOfPaymentName: "receipt.png",
	})
	if err == nil {
		t.Fatal("expected validation error for empty cart")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %s", pkgerrors.As(err).Code())
	}
	if created != 0 {
		t.Fatal("no order should be created for an empty cart")
	}
	if len(store.removed) != len(store.saved) {
		t.Fatalf("stored proof should be cleaned up, saved %v removed %v", store.saved, store.removed)
	}
}

func TestCheckout_ReadsCartInsideTransaction(t *testing.T) {
	userID := uuid.New()
	items := cartFixture(userID)

	var createdOrder *models.Order
	txRepo := &fakeRepository{
		listCartItemsFn: func(ctx context.Context, id uuid.UUID) ([]models.CartItem, error) {
			return items, nil
		},
		createOrderFn: func(ctx context.Context, order *models.Order) error {
			order.ID = uuid.New()
			createdOrder = order
			return nil
		},
	}
	repo := &fakeRepository{
		txRepo: txRepo,
		listCartItemsFn: func(ctx context.Context, id uuid.UUID) ([]models.CartItem, error) {
			t.Fatal("cart must be read through the transaction-scoped repository")
			return nil, nil
		},
	}
	svc := newService(t, repo, &fakeStore{}, &fakeEmitter{}, &fakeTxRunner{})

	if _, err := svc.Checkout(context.Background(), userID, Params{
		ShippingAddress:    "12 Lagos Rd",
		ProofOfPayment:     strings.NewReader("receipt"),
		ProofOfPaymentName: "receipt.png",
	}); err != nil {
		t.Fatalf("unexpected checkout error: %v", err)
	}
	if createdOrder == nil || !createdOrder.Total.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected order total 2500, got %+v", createdOrder)
	}
}

func TestCheckout_FreezesPricesAndClearsCart(t *testing.T) {
	userID := uuid.New()
	items := cartFixture(userID)

	var createdOrder *models.Order
	cleared := false
	repo := &fakeRepository{
		listCartItemsFn: func(ctx context.Context, id uuid.UUID) ([]models.CartItem, error) {
			return items, nil
		},
		createOrderFn: func(ctx context.Context, order *models.Order) error {
			order.ID = uuid.New()
			createdOrder = order
			return nil
		},
		deleteCartItemsFn: func(ctx context.Context, id uuid.UUID) (int64, error) {
			cleared = true
			return int64(len(items)), nil
		},
	}
	store := &fakeStore{}
	emitter := &fakeEmitter{}
	svc := newService(t, repo, store, emitter, &fakeTxRunner{})

	result, err := svc.Checkout(context.Background(), userID, Params{
		ShippingAddress:    "12 Lagos Rd",
		ProofOfPayment:     strings.NewReader("receipt"),
		ProofOfPaymentName: "receipt.png",
	})
	if err != nil {
		t.Fatalf("unexpected checkout error: %v", err)
	}

	if createdOrder == nil {
		t.Fatal("expected an order to be created")
	}
	if createdOrder.Status != enums.OrderPending {
		t.Fatalf("expected pending order, got %s", createdOrder.Status)
	}
	if len(createdOrder.Items) != len(items) {
		t.Fatalf("expected %d order items, got %d", len(items), len(createdOrder.Items))
	}
	if !createdOrder.Total.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected total 2500, got %s", createdOrder.Total)
	}
	if createdOrder.ShippingAddress != "12 Lagos Rd" {
		t.Fatalf("unexpected address %q", createdOrder.ShippingAddress)
	}
	if !cleared {
		t.Fatal("expected the cart to be cleared")
	}
	if len(emitter.events) != 1 || emitter.events[0].EventType != enums.EventOrderCreated {
		t.Fatalf("expected one order_created event, got %+v", emitter.events)
	}
	if result.Bank.BankName != "GTBank" || result.Bank.AccountNumber != "0123456789" {
		t.Fatalf("unexpected bank details %+v", result.Bank)
	}
	if !result.Order.Total.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expected view total 2500, got %s", result.Order.Total)
	}
}

func TestCheckout_SnapshotSurvivesCatalogChange(t *testing.T) {
	userID := uuid.New()
	product := &models.Product{ID: uuid.New(), Name: "Aso Oke Wrap", Price: decimal.NewFromInt(1000)}
	items := []models.CartItem{{UserID: userID, ProductID: product.ID, Product: product, Quantity: 2}}

	var createdOrder *models.Order
	repo := &fakeRepository{
		listCartItemsFn: func(ctx context.Context, id uuid.UUID) ([]models.CartItem, error) {
			return items, nil
		},
		createOrderFn: func(ctx context.Context, order *models.Order) error {
			order.ID = uuid.New()
			createdOrder = order
			return nil
		},
	}
	svc := newService(t, repo, &fakeStore{}, &fakeEmitter{}, &fakeTxRunner{})

	if _, err := svc.Checkout(context.Background(), userID, Params{
		ShippingAddress:    "12 Lagos Rd",
		ProofOfPayment:     strings.NewReader("receipt"),
		ProofOfPaymentName: "receipt.png",
	}); err != nil {
		t.Fatalf("unexpected checkout error: %v", err)
	}

	// a later catalog price change must not leak into the frozen line
	product.Price = decimal.NewFromInt(9999)

	if !createdOrder.Items[0].Price.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected frozen price 1000, got %s", createdOrder.Items[0].Price)
	}
	if !createdOrder.Total.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected total 2000, got %s", createdOrder.Total)
	}
}

func TestCheckout_TransactionFailureRemovesProof(t *testing.T) {
	userID := uuid.New()
	repo := &fakeRepository{
		listCartItemsFn: func(ctx context.Context, id uuid.UUID) ([]models.CartItem, error) {
			return cartFixture(userID), nil
		},
	}
	store := &fakeStore{}
	svc := newService(t, repo, store, &fakeEmitter{}, &fakeTxRunner{err: errors.New("boom")})

	_, err := svc.Checkout(context.Background(), userID, Params{
		ShippingAddress:    "12 Lagos Rd",
		ProofOfPayment:     strings.NewReader("receipt"),
		ProofOfPaymentName: "receipt.png",
	})
	if err == nil {
		t.Fatal("expected checkout to fail")
	}
	if len(store.removed) != 1 {
		t.Fatalf("expected orphaned proof to be removed, got %v", store.removed)
	}
}
