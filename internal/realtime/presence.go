package realtime

import (
	"context"
	"log"

	"splitpath/internal/domain"
)

// FriendsDirectory resolves a user's accepted friends. Implemented by the
// friends repository.
type FriendsDirectory interface {
	ListAcceptedFriendIDs(ctx context.Context, userID int64, limit int) ([]int64, error)
}

// PresenceBroadcaster fans presence transitions out to friends. Visibility is
// scoped to the accepted-friend relation: an event goes only to users that
// are both friends of the subject and currently registered in the
// friends-presence namespace, never globally.
type PresenceBroadcaster struct {
	registry Registry
	friends  FriendsDirectory

	// Friend lists are fetched with this bound; presence is best-effort and
	// users with enormous friend lists get a partial fan-out.
	fanoutLimit int
}

func NewPresenceBroadcaster(registry Registry, friends FriendsDirectory, fanoutLimit int) *PresenceBroadcaster {
	return &PresenceBroadcaster{
		registry:    registry,
		friends:     friends,
		fanoutLimit: fanoutLimit,
	}
}

// BroadcastStatus emits presence-changed for userID to each connected friend.
// Failures are isolated per recipient: one bad socket never aborts delivery
// to the rest.
func (b *PresenceBroadcaster) BroadcastStatus(ctx context.Context, userID int64, isOnline bool) {
	friendIDs, err := b.friends.ListAcceptedFriendIDs(ctx, userID, b.fanoutLimit)
	if err != nil {
		log.Printf("presence: failed to resolve friends of user %d: %v", userID, err)
		return
	}

	event := NewPresenceEvent(userID, isOnline)
	for _, friendID := range friendIDs {
		notify(b.registry, NamespaceFriends, friendID, event)
	}
}

// NotifyFriendRequest tells the receiver about a new pending request, if they
// are connected.
func (b *PresenceBroadcaster) NotifyFriendRequest(request *domain.Friend) {
	notify(b.registry, NamespaceFriends, request.ReceiverID, NewFriendRequestEvent(request))
}

// NotifyFriendRequestAccepted tells the original sender their request was
// accepted.
func (b *PresenceBroadcaster) NotifyFriendRequestAccepted(request *domain.Friend) {
	notify(b.registry, NamespaceFriends, request.SenderID, NewFriendRequestAcceptedEvent(request))
}
