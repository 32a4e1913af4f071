package messages

import (
	"context"
	"strings"

	"splitpath/internal/domain"
)

type Service struct {
	store   MessageStoreInterface
	friends FriendshipChecker
	relay   Relay
}

func NewService(store MessageStoreInterface, friends FriendshipChecker, relay Relay) *Service {
	return &Service{store: store, friends: friends, relay: relay}
}

// Send persists the message and then notifies both parties' live
// connections. The notification happens strictly after the durable write and
// cannot fail it.
func (s *Service) Send(ctx context.Context, fromID int64, req SendMessageRequest) (*domain.Message, error) {
	if fromID == req.ToUserID {
		return nil, ErrCannotMessageSelf
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
	}

	areFriends, err := s.friends.AreFriends(ctx, fromID, req.ToUserID)
	if err != nil {
		return nil, err
	}
	if !areFriends {
		return nil, ErrNotFriends
	}

	msg := &domain.Message{
		FromID:  fromID,
		ToID:    req.ToUserID,
		Content: req.Content,
	}
	if err := s.store.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.relay.NotifyNewMessage(msg)
	return msg, nil
}

// MarkRead marks the given messages read for the reader and relays batched
// read receipts to the affected senders.
func (s *Service) MarkRead(ctx context.Context, readerID int64, req MarkReadRequest) ([]domain.Message, error) {
	updated, err := s.store.MarkRead(ctx, req.MessageIDs, readerID)
	if err != nil {
		return nil, err
	}

	if len(updated) > 0 {
		s.relay.NotifyMessagesRead(updated, readerID)
	}
	return updated, nil
}

func (s *Service) GetChat(ctx context.Context, userID, otherID int64, limit int, beforeID *int64) ([]domain.Message, error) {
	areFriends, err := s.friends.AreFriends(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	if !areFriends {
		return nil, ErrNotFriends
	}

	return s.store.ListBetween(ctx, userID, otherID, limit, beforeID)
}

func (s *Service) UnreadFrom(ctx context.Context, userID, fromID int64) ([]domain.Message, error) {
	return s.store.FindUnreadFrom(ctx, fromID, userID)
}
