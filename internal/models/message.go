package models

import (
	"time"
)

// OrderMessage is a single entry of the chat thread attached to an order
type OrderMessage struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   int64     `json:"order_id" db:"order_id"`
	SenderID  int64     `json:"sender_id" db:"sender_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewOrderMessage creates a message from sender on the given order
func NewOrderMessage(orderID, senderID int64, text string) *OrderMessage {
	return &OrderMessage{
		OrderID:  orderID,
		SenderID: senderID,
		Message:  text,
	}
}

// OrderMessageDetails is a message annotated with its sender
type OrderMessageDetails struct {
	OrderMessage
	SenderName string   `json:"sender_name" db:"sender_name"`
	SenderRole UserRole `json:"sender_role" db:"sender_role"`
}

// ContactMessage is a contact-form submission from the public site
type ContactMessage struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Phone     string    `json:"phone" db:"phone"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// HasEmail returns true if the visitor left an e-mail address
func (m *ContactMessage) HasEmail() bool {
	return m.Email != ""
}
