package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RejectedOrder is the archive copy of an order an admin rejected. The live
// order row is deleted in the same transaction that writes this one.
type RejectedOrder struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OriginalOrderID    uuid.UUID           `gorm:"column:original_order_id;type:uuid;not null;uniqueIndex"`
	UserID             uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	ShippingAddress    string              `gorm:"column:shipping_address;type:text;not null"`
	ProofOfPaymentPath string              `gorm:"column:proof_of_payment_path;type:text;not null"`
	Total              decimal.Decimal     `gorm:"column:total;type:numeric(10,2);not null"`
	Reason             string              `gorm:"column:reason;type:text;not null"`
	OrderedAt          time.Time           `gorm:"column:ordered_at;not null"`
	RejectedAt         time.Time           `gorm:"column:rejected_at;autoCreateTime"`
	Items              []RejectedOrderItem `gorm:"foreignKey:RejectedOrderID;constraint:OnDelete:CASCADE"`
}

// RejectedOrderItem preserves a rejected order's priced lines.
type RejectedOrderItem struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	RejectedOrderID uuid.UUID       `gorm:"column:rejected_order_id;type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName     string          `gorm:"column:product_name;type:text;not null"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity        int             `gorm:"column:quantity;not null"`
}

// CompletedOrder is the archive copy of a fulfilled order.
type CompletedOrder struct {
	ID                 uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OriginalOrderID    uuid.UUID            `gorm:"column:original_order_id;type:uuid;not null;uniqueIndex"`
	UserID             uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	ShippingAddress    string               `gorm:"column:shipping_address;type:text;not null"`
	ProofOfPaymentPath string               `gorm:"column:proof_of_payment_path;type:text;not null"`
	Total              decimal.Decimal      `gorm:"column:total;type:numeric(10,2);not null"`
	OrderedAt          time.Time            `gorm:"column:ordered_at;not null"`
	CompletedAt        time.Time            `gorm:"column:completed_at;autoCreateTime"`
	Items              []CompletedOrderItem `gorm:"foreignKey:CompletedOrderID;constraint:OnDelete:CASCADE"`
}

// CompletedOrderItem preserves a completed order's priced lines.
type CompletedOrderItem struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompletedOrderID uuid.UUID       `gorm:"column:completed_order_id;type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName      string          `gorm:"column:product_name;type:text;not null"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity         int             `gorm:"column:quantity;not null"`
}
