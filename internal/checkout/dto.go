package checkout

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
)

// Params carries the checkout inputs. ProofOfPayment is the uploaded file
// stream; it is nil when the client sent no file at all.
type Params struct {
	ShippingAddress    string
	ProofOfPayment     io.Reader
	ProofOfPaymentName string
}

// ItemView is one frozen order line.
type ItemView struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// OrderView is the order produced by a successful checkout.
type OrderView struct {
	ID              uuid.UUID         `json:"id"`
	Status          enums.OrderStatus `json:"status"`
	ShippingAddress string            `json:"shipping_address"`
	Total           decimal.Decimal   `json:"total"`
	Items           []ItemView        `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

// BankDetails is the transfer destination surfaced with every checkout.
type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// Result bundles the created order with the payment instructions.
type Result struct {
	Order OrderView   `json:"order"`
	Bank  BankDetails `json:"bank_details"`
}

func toOrderView(order models.Order) OrderView {
	view := OrderView{
		ID:              order.ID,
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
