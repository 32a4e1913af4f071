package friends

import (
	"context"

	"splitpath/internal/domain"
)

type FriendRepositoryInterface interface {
	Create(ctx context.Context, f *domain.Friend) error
	GetByID(ctx context.Context, id int64) (*domain.Friend, error)
	GetBetween(ctx context.Context, userA, userB int64) (*domain.Friend, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FriendStatus) error
	AreFriends(ctx context.Context, userA, userB int64) (bool, error)
	ListAccepted(ctx context.Context, userID int64, limit, offset int) ([]domain.Friend, error)
	ListPendingIncoming(ctx context.Context, userID int64, limit, offset int) ([]domain.Friend, error)
	ListPendingOutgoing(ctx context.Context, userID int64, limit, offset int) ([]domain.Friend, error)
}

type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// Notifier pushes friend-request events to connected receivers. Best-effort;
// implemented by the realtime presence broadcaster.
type Notifier interface {
	NotifyFriendRequest(request *domain.Friend)
	NotifyFriendRequestAccepted(request *domain.Friend)
}

type OnlineChecker interface {
	IsOnline(userID int64) bool
}
