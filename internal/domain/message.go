package domain

import "time"

// Message is a private message between two users. The messages table is the
// durable source of truth; realtime delivery over the socket layer is a
// best-effort notification on top of it.
type Message struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	FromID  int64  `json:"from_id" gorm:"not null;index"`
	ToID    int64  `json:"to_id" gorm:"not null;index"`
	Content string `json:"content" gorm:"not null"`

	Read bool `json:"read" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (Message) TableName() string { return "messages" }
