package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
)

// ItemView is one cart line priced at the current catalog price.
type ItemView struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// View is the whole cart with its computed total.
type View struct {
	Items []ItemView      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// AddItemParams is the input for adding a product to the cart.
type AddItemParams struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=1,lte=999"`
}

// UpdateItemParams sets an absolute quantity for a cart line.
type UpdateItemParams struct {
	Quantity int `json:"quantity" validate:"required,gte=1,lte=999"`
}

func toItemView(item models.CartItem) ItemView {
	view := ItemView{
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		view.Name = item.Product.Name
		view.UnitPrice = item.Product.Price
		view.LineTotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return view
}
