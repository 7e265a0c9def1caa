package enums

import "fmt"

// OrderStatus maps to the order_status enum in Postgres.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderRejected  OrderStatus = "rejected"
	OrderCompleted OrderStatus = "completed"
)

var validOrderStatuses = []OrderStatus{
	OrderPending,
	OrderApproved,
	OrderRejected,
	OrderCompleted,
}

// IsValid reports whether the value matches the canonical order_status enum.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// ParseOrderStatus converts raw input into OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
