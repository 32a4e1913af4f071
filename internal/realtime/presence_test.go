package realtime

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"splitpath/internal/domain"
)

type stubFriends struct {
	ids map[int64][]int64
	err error
}

func (s *stubFriends) ListAcceptedFriendIDs(_ context.Context, userID int64, _ int) ([]int64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.ids[userID], nil
}

func presenceEvents(s *fakeSender) []*PresenceEvent {
	var out []*PresenceEvent
	for _, e := range s.events {
		if pe, ok := e.(*PresenceEvent); ok {
			out = append(out, pe)
		}
	}
	return out
}

func TestBroadcastStatus_OnlyConnectedFriendsReceive(t *testing.T) {
	registry := NewMemoryRegistry()
	friends := &stubFriends{ids: map[int64][]int64{42: {7, 9}}}
	b := NewPresenceBroadcaster(registry, friends, 1000)

	// Friend 7 is connected in the presence namespace, friend 9 is not.
	friend7 := newFakeSender("c7")
	registry.Register(7, NamespaceFriends, friend7)

	b.BroadcastStatus(context.Background(), 42, true)
	b.BroadcastStatus(context.Background(), 42, false)

	events := presenceEvents(friend7)
	if assert.Len(t, events, 2) {
		assert.Equal(t, "presence-changed", events[0].Type)
		assert.Equal(t, int64(42), events[0].UserID)
		assert.True(t, events[0].IsOnline)
		assert.False(t, events[1].IsOnline)
	}
}

func TestBroadcastStatus_NotSentToStrangers(t *testing.T) {
	registry := NewMemoryRegistry()
	friends := &stubFriends{ids: map[int64][]int64{42: {7}}}
	b := NewPresenceBroadcaster(registry, friends, 1000)

	stranger := newFakeSender("s")
	registry.Register(99, NamespaceFriends, stranger)

	b.BroadcastStatus(context.Background(), 42, true)

	assert.Empty(t, stranger.events)
}

func TestBroadcastStatus_WrongNamespaceNotDelivered(t *testing.T) {
	registry := NewMemoryRegistry()
	friends := &stubFriends{ids: map[int64][]int64{42: {7}}}
	b := NewPresenceBroadcaster(registry, friends, 1000)

	// Friend 7 only has a chat connection, no presence subscription.
	chatOnly := newFakeSender("c")
	registry.Register(7, NamespacePrivateChat, chatOnly)

	b.BroadcastStatus(context.Background(), 42, true)

	assert.Empty(t, chatOnly.events)
}

func TestBroadcastStatus_FailedRecipientDoesNotAbortOthers(t *testing.T) {
	registry := NewMemoryRegistry()
	friends := &stubFriends{ids: map[int64][]int64{42: {7, 9}}}
	b := NewPresenceBroadcaster(registry, friends, 1000)

	broken := newFakeSender("b")
	broken.sendErr = errors.New("write: broken pipe")
	healthy := newFakeSender("h")
	registry.Register(7, NamespaceFriends, broken)
	registry.Register(9, NamespaceFriends, healthy)

	b.BroadcastStatus(context.Background(), 42, true)

	assert.Len(t, presenceEvents(healthy), 1)
}

func TestBroadcastStatus_FriendLookupFailureIsSwallowed(t *testing.T) {
	registry := NewMemoryRegistry()
	friends := &stubFriends{err: errors.New("db down")}
	b := NewPresenceBroadcaster(registry, friends, 1000)

	assert.NotPanics(t, func() {
		b.BroadcastStatus(context.Background(), 42, true)
	})
}

func TestNotifyFriendRequest_DeliveredToReceiver(t *testing.T) {
	registry := NewMemoryRegistry()
	b := NewPresenceBroadcaster(registry, &stubFriends{}, 1000)

	receiver := newFakeSender("r")
	registry.Register(9, NamespaceFriends, receiver)

	request := &domain.Friend{ID: 5, SenderID: 42, ReceiverID: 9, Status: domain.FriendStatusPending}
	b.NotifyFriendRequest(request)

	if assert.Len(t, receiver.events, 1) {
		event := receiver.events[0].(*FriendRequestEvent)
		assert.Equal(t, "new-friend-request", event.Type)
		assert.Equal(t, int64(42), event.Request.SenderID)
	}
}

func TestNotifyFriendRequestAccepted_DeliveredToSender(t *testing.T) {
	registry := NewMemoryRegistry()
	b := NewPresenceBroadcaster(registry, &stubFriends{}, 1000)

	sender := newFakeSender("s")
	registry.Register(42, NamespaceFriends, sender)

	request := &domain.Friend{ID: 5, SenderID: 42, ReceiverID: 9, Status: domain.FriendStatusAccepted}
	b.NotifyFriendRequestAccepted(request)

	if assert.Len(t, sender.events, 1) {
		event := sender.events[0].(*FriendRequestEvent)
		assert.Equal(t, "friend-request-accepted", event.Type)
	}
}

func TestNotifyFriendRequest_OfflineReceiverIsNoOp(t *testing.T) {
	registry := NewMemoryRegistry()
	b := NewPresenceBroadcaster(registry, &stubFriends{}, 1000)

	assert.NotPanics(t, func() {
		b.NotifyFriendRequest(&domain.Friend{SenderID: 42, ReceiverID: 9})
	})
}
