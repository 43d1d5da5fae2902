package models

import (
	"time"

	"gorm.io/gorm"
)

// ChatMessage is a message exchanged between the customer and driver of a
// booking. This service only ever flips the read flag; creation and deletion
// happen in the rider/driver apps.
type ChatMessage struct {
	gorm.Model
	BookingID  uint       `json:"bookingId" gorm:"not null;index"`
	SenderID   uint       `json:"senderId" gorm:"not null"`
	ReceiverID uint       `json:"receiverId" gorm:"not null;index"`
	Content    string     `json:"content" gorm:"not null"`
	ReadAt     *time.Time `json:"readAt"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// Response projects a chat message into the camel-case API shape.
func (m *ChatMessage) Response() map[string]interface{} {
	var readAt interface{}
	if m.ReadAt != nil {
		readAt = m.ReadAt.UTC().Format(time.RFC3339)
	}
	return map[string]interface{}{
		"id":         m.ID,
		"bookingId":  m.BookingID,
		"senderId":   m.SenderID,
		"receiverId": m.ReceiverID,
		"content":    m.Content,
		"readAt":     readAt,
		"createdAt":  m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
