package dashboard

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
	pkgerrors "github.com/AYOGRAM01/Jollyshop/pkg/errors"
)

// Stats is the admin overview snapshot.
type Stats struct {
	PendingOrders         int64 `json:"pending_orders"`
	ApprovedOrders        int64 `json:"approved_orders"`
	RejectedOrders        int64 `json:"rejected_orders"`
	CompletedOrders       int64 `json:"completed_orders"`
	Products              int64 `json:"products"`
	Customers             int64 `json:"customers"`
	UnreadContactMessages int64 `json:"unread_contact_messages"`
}

// Service aggregates counts for the admin overview page.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	db *gorm.DB
}

// NewService constructs a dashboard service over the shared database handle.
func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is required")
	}
	return &service{db: db}, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.PendingOrders, s.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", enums.OrderPending)},
		{&stats.ApprovedOrders, s.db.WithContext(ctx).Model(&models.Order{}).Where("status = ?", enums.OrderApproved)},
		{&stats.RejectedOrders, s.db.WithContext(ctx).Model(&models.RejectedOrder{})},
		{&stats.CompletedOrders, s.db.WithContext(ctx).Model(&models.CompletedOrder{})},
		{&stats.Products, s.db.WithContext(ctx).Model(&models.Product{})},
		{&stats.Customers, s.db.WithContext(ctx).Model(&models.User{}).Where("role = ?", enums.RoleCustomer)},
		{&stats.UnreadContactMessages, s.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("is_read = false")},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "collect dashboard stats")
		}
	}
	return stats, nil
}
