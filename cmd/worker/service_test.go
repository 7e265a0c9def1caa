package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AYOGRAM01/Jollyshop/pkg/config"
	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	"github.com/AYOGRAM01/Jollyshop/pkg/logger"
	"github.com/AYOGRAM01/Jollyshop/pkg/mailer"
	"github.com/AYOGRAM01/Jollyshop/pkg/outbox"
)

type fakeDB struct {
	pingErr error
}

func (f *fakeDB) Ping(context.Context) error { return f.pingErr }

type fakeRepo struct {
	events      []models.OutboxEvent
	fetchErr    error
	published   []uuid.UUID
	failed      []uuid.UUID
	markPubErr  error
	markFailErr error
}

func (f *fakeRepo) FetchUnpublished(limit, maxAttempts int) ([]models.OutboxEvent, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.events, nil
}

func (f *fakeRepo) MarkPublished(id uuid.UUID) error {
	if f.markPubErr != nil {
		return f.markPubErr
	}
	f.published = append(f.published, id)
	return nil
}

func (f *fakeRepo) MarkFailed(id uuid.UUID, err error) error {
	if f.markFailErr != nil {
		return f.markFailErr
	}
	f.failed = append(f.failed, id)
	return nil
}

type fakeMailer struct {
	sent    []mailer.Message
	sendErr error
}

func (f *fakeMailer) Send(ctx context.Context, msg mailer.Message) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestService(t *testing.T, repo *fakeRepo, mail *fakeMailer) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Config:     &config.Config{},
		Logger:     logger.New(logger.Options{ServiceName: "worker-test"}),
		DB:         &fakeDB{},
		Repository: repo,
		Mailer:     mail,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func approvalEvent(t *testing.T, orderID uuid.UUID) models.OutboxEvent {
	t.Helper()
	data, err := json.Marshal(approvalEmailData{
		OrderID:         orderID,
		UserID:          uuid.New(),
		Email:           "ada@example.com",
		FirstName:       "Ada",
		ShippingAddress: "12 Lagos Rd, Ikeja",
	})
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	payload, err := json.Marshal(outbox.PayloadEnvelope{
		Version:    1,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now(),
		Data:       data,
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.EventOrderApproved,
		AggregateType: enums.AggregateOrder,
		AggregateID:   orderID,
		Payload:       payload,
	}
}

func TestProcessBatch_SendsApprovalEmail(t *testing.T) {
	orderID := uuid.New()
	event := approvalEvent(t, orderID)
	repo := &fakeRepo{events: []models.OutboxEvent{event}}
	mail := &fakeMailer{}
	svc := newTestService(t, repo, mail)

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch: %v", err)
	}
	if !processed {
		t.Fatal("expected batch to be processed")
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mail.sent))
	}
	msg := mail.sent[0]
	if msg.To != "ada@example.com" {
		t.Fatalf("unexpected recipient %q", msg.To)
	}
	wantSubject := "Your Order #" + orderID.String() + " has been Approved"
	if msg.Subject != wantSubject {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.HasPrefix(msg.Body, "Hello Ada,") {
		t.Fatalf("unexpected body start: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "12 Lagos Rd, Ikeja") {
		t.Fatalf("body missing address: %q", msg.Body)
	}

	if len(repo.published) != 1 || repo.published[0] != event.ID {
		t.Fatalf("expected event marked published, got %v", repo.published)
	}
	if len(repo.failed) != 0 {
		t.Fatalf("expected no failures, got %v", repo.failed)
	}
}

func TestProcessBatch_NonEmailEventsAreDrained(t *testing.T) {
	event := models.OutboxEvent{
		ID:            uuid.New(),
		EventType:     enums.EventOrderRejected,
		AggregateType: enums.AggregateOrder,
		AggregateID:   uuid.New(),
		Payload:       json.RawMessage(`{"version":1,"eventId":"x","occurredAt":"2026-08-20T00:00:00Z","data":{}}`),
	}
	repo := &fakeRepo{events: []models.OutboxEvent{event}}
	mail := &fakeMailer{}
	svc := newTestService(t, repo, mail)

	if _, err := svc.processBatch(context.Background()); err != nil {
		t.Fatalf("processBatch: %v", err)
	}

	if len(mail.sent) != 0 {
		t.Fatalf("expected no email, got %d", len(mail.sent))
	}
	if len(repo.published) != 1 {
		t.Fatalf("expected event drained, got %v", repo.published)
	}
}

func TestProcessBatch_MailFailureMarksFailed(t *testing.T) {
	event := approvalEvent(t, uuid.New())
	repo := &fakeRepo{events: []models.OutboxEvent{event}}
	mail := &fakeMailer{sendErr: errors.New("smtp down")}
	svc := newTestService(t, repo, mail)

	if _, err := svc.processBatch(context.Background()); err != nil {
		t.Fatalf("processBatch: %v", err)
	}

	if len(repo.published) != 0 {
		t.Fatalf("expected nothing published, got %v", repo.published)
	}
	if len(repo.failed) != 1 || repo.failed[0] != event.ID {
		t.Fatalf("expected event marked failed, got %v", repo.failed)
	}
}

func TestProcessBatch_EmptyQueue(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo, &fakeMailer{})

	processed, err := svc.processBatch(context.Background())
	if err != nil {
		t.Fatalf("processBatch: %v", err)
	}
	if processed {
		t.Fatal("expected idle batch")
	}
}
