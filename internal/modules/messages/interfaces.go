package messages

import (
	"context"

	"splitpath/internal/domain"
)

// MessageStoreInterface is the durable message store collaborator.
type MessageStoreInterface interface {
	Create(ctx context.Context, m *domain.Message) error
	MarkRead(ctx context.Context, ids []int64, readerID int64) ([]domain.Message, error)
	FindUnreadFrom(ctx context.Context, fromID, toID int64) ([]domain.Message, error)
	ListBetween(ctx context.Context, userA, userB int64, limit int, beforeID *int64) ([]domain.Message, error)
}

type FriendshipChecker interface {
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
}

// Relay pushes realtime notifications after durable writes. All methods are
// best-effort and must never fail the triggering operation.
type Relay interface {
	NotifyNewMessage(msg *domain.Message)
	NotifyMessagesRead(messages []domain.Message, readerID int64)
}
