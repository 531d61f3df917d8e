package models

import "time"

// ChatMessage is one exchange with the AI assistant (user prompt + reply)
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"chat_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text;not null" json:"response"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName keeps the historical table name for chat exchanges
func (ChatMessage) TableName() string {
	return "chat_history"
}
