package inbox

import (
	"time"

	"github.com/google/uuid"

	"github.com/AYOGRAM01/Jollyshop/pkg/db/models"
	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
)

// ListParams pages a user's inbox.
type ListParams struct {
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// MessageView is one inbox entry as returned to the client.
type MessageView struct {
	ID          uuid.UUID              `json:"id"`
	OrderID     *uuid.UUID             `json:"order_id,omitempty"`
	MessageType enums.InboxMessageType `json:"message_type"`
	Subject     string                 `json:"subject"`
	Body        string                 `json:"body"`
	IsRead      bool                   `json:"is_read"`
	CreatedAt   time.Time              `json:"created_at"`
}

// ListResult carries a page of messages plus the next cursor.
type ListResult struct {
	Items  []MessageView `json:"items"`
	Cursor string        `json:"cursor,omitempty"`
}

func toMessageView(message models.InboxMessage) MessageView {
	return MessageView{
		ID:          message.ID,
		OrderID:     message.OrderID,
		MessageType: message.MessageType,
		Subject:     message.Subject,
		Body:        message.Body,
		IsRead:      message.IsRead,
		CreatedAt:   message.CreatedAt,
	}
}
