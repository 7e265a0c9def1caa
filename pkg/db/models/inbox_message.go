package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/AYOGRAM01/Jollyshop/pkg/enums"
)

// InboxMessage is the durable in-app notification row. It is written in the
// same transaction as the state change that caused it.
type InboxMessage struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID              `gorm:"column:user_id;type:uuid;not null;index"`
	OrderID     *uuid.UUID             `gorm:"column:order_id;type:uuid"`
	MessageType enums.InboxMessageType `gorm:"column:message_type;type:inbox_message_type;not null;default:'order_update'"`
	Subject     string                 `gorm:"column:subject;type:text;not null"`
	Body        string                 `gorm:"column:body;type:text;not null"`
	IsRead      bool                   `gorm:"column:is_read;not null;default:false"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
}
