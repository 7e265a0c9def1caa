package enums

import "fmt"

// InboxMessageType maps to the inbox_message_type enum in Postgres.
type InboxMessageType string

const (
	InboxOrderUpdate InboxMessageType = "order_update"
	InboxPromotion   InboxMessageType = "promotion"
	InboxSystem      InboxMessageType = "system"
)

var validInboxMessageTypes = []InboxMessageType{
	InboxOrderUpdate,
	InboxPromotion,
	InboxSystem,
}

// IsValid reports whether the value matches the canonical inbox_message_type enum.
func (m InboxMessageType) IsValid() bool {
	for _, candidate := range validInboxMessageTypes {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseInboxMessageType converts raw input into InboxMessageType.
func ParseInboxMessageType(value string) (InboxMessageType, error) {
	for _, candidate := range validInboxMessageTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inbox message type %q", value)
}
