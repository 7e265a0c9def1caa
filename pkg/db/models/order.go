package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
)

// Order is a live order. Rejected and completed orders are moved into their
// archive tables and deleted from here in the same transaction.
type Order struct {
	ID                 uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID         `gorm:"column:user_id;type:uuid;not null;index"`
	Status             enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	ShippingAddress    string            `gorm:"column:shipping_address;type:text;not null"`
	ProofOfPaymentPath string            `gorm:"column:proof_of_payment_path;type:text;not null"`
	Total              decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	Items              []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is a priced line frozen at checkout. Price is the unit price the
// product had when the cart converted; catalog updates never touch it.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName string          `gorm:"column:product_name;type:text;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
