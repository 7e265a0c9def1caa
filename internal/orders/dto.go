package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
)

// Actor identifies who is driving a state transition.
type Actor struct {
	UserID uuid.UUID
	Role   enums.UserRole
}

// ListParams pages any of the order listings.
type ListParams struct {
	Limit  int
	Cursor string
}

// ItemView is one frozen order line.
type ItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// OrderView is a live order with its line items.
type OrderView struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	Status          enums.OrderStatus `json:"status"`
	ShippingAddress string            `json:"shipping_address"`
	Total           decimal.Decimal   `json:"total"`
	Items           []ItemView        `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ListResult carries a page of live orders plus the next cursor.
type ListResult struct {
	Items  []OrderView `json:"items"`
	Cursor string      `json:"cursor,omitempty"`
}

// ArchivedOrderView is a rejected or completed order copy.
type ArchivedOrderView struct {
	ID              uuid.UUID       `json:"id"`
	OriginalOrderID uuid.UUID       `json:"original_order_id"`
	UserID          uuid.UUID       `json:"user_id"`
	ShippingAddress string          `json:"shipping_address"`
	Total           decimal.Decimal `json:"total"`
	Reason          string          `json:"reason,omitempty"`
	Items           []ItemView      `json:"items"`
	OrderedAt       time.Time       `json:"ordered_at"`
	ArchivedAt      time.Time       `json:"archived_at"`
}

// ArchiveListResult carries a page of archived orders plus the next cursor.
type ArchiveListResult struct {
	Items  []ArchivedOrderView `json:"items"`
	Cursor string              `json:"cursor,omitempty"`
}

func toOrderView(order models.Order) OrderView {
	view := OrderView{
		ID:              order.ID,
		UserID:          order.UserID,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		Total:           order.Total,
		Items:           make([]ItemView, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, ItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return view
}

func toRejectedView(order models.RejectedOrder) ArchivedOrderView {
	view := ArchivedOrderView{
		ID:              order.ID,
		OriginalOrderID: order.OriginalOrderID,
		UserID:          order.UserID,
		ShippingAddress: order.ShippingAddress,
		Total:           order.Total,
		Reason:          order.Reason,
		Items:           make([]ItemView, 0, len(order.Items)),
		OrderedAt:       order.OrderedAt,
		ArchivedAt:      order.RejectedAt,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, ItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return view
}

func toCompletedView(order models.CompletedOrder) ArchivedOrderView {
	view := ArchivedOrderView{
		ID:              order.ID,
		OriginalOrderID: order.OriginalOrderID,
		UserID:          order.UserID,
		ShippingAddress: order.ShippingAddress,
		Total:           order.Total,
		Items:           make([]ItemView, 0, len(order.Items)),
		OrderedAt:       order.OrderedAt,
		ArchivedAt:      order.CompletedAt,
	}
	for _, item := range order.Items {
		view.Items = append(view.Items, ItemView{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
		})
	}
	return view
}
