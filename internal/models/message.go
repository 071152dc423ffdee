package models

import "time"

// Message представляет модель сообщения между пользователями.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName,omitempty"`
	ReceiverID string    `json:"receiverId"`
	LoadID     *string   `json:"loadId,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MessageRequest представляет структуру запроса для отправки сообщения.
type MessageRequest struct {
	SenderID   string `json:"senderId" validate:"required,uuid4"`
	ReceiverID string `json:"receiverId" validate:"required,uuid4"`
	LoadID     string `json:"loadId" validate:"omitempty,uuid4"`
	Body       string `json:"body" validate:"required"`
}

// SavedLoad представляет закладку пользователя на груз.
type SavedLoad struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	LoadID    string    `json:"loadId"`
	CreatedAt time.Time `json:"createdAt"`
}
