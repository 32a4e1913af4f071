package domain

import "time"

type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "pending"
	FriendStatusAccepted FriendStatus = "accepted"
	FriendStatusRejected FriendStatus = "rejected"
)

// Friend is a friendship edge. A pending row is an outstanding request from
// SenderID to ReceiverID; an accepted row makes the two users friends in both
// directions.
type Friend struct {
	ID         int64        `json:"id" gorm:"primaryKey"`
	SenderID   int64        `json:"sender_id" gorm:"not null;index"`
	ReceiverID int64        `json:"receiver_id" gorm:"not null;index"`
	Status     FriendStatus `json:"status" gorm:"default:'pending'"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sender   *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}

func (Friend) TableName() string { return "friends" }
