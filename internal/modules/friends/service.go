package friends

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"splitpath/internal/domain"
)

type Service struct {
	friends  FriendRepositoryInterface
	users    UserFinder
	notifier Notifier
}

func NewService(friends FriendRepositoryInterface, users UserFinder, notifier Notifier) *Service {
	return &Service{friends: friends, users: users, notifier: notifier}
}

// SendRequest creates a pending request addressed by email. Only one edge may
// exist between two users at a time, in either direction.
func (s *Service) SendRequest(ctx context.Context, senderID int64, req CreateFriendRequestRequest) (*domain.Friend, error) {
	receiver, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if receiver.ID == senderID {
		return nil, ErrSelfRequest
	}

	if _, err := s.friends.GetBetween(ctx, senderID, receiver.ID); err == nil {
		return nil, ErrRequestExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := &domain.Friend{
		SenderID:   senderID,
		ReceiverID: receiver.ID,
		Status:     domain.FriendStatusPending,
	}
	if err := s.friends.Create(ctx, request); err != nil {
		return nil, err
	}

	created, err := s.friends.GetByID(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	s.notifier.NotifyFriendRequest(created)
	return created, nil
}

// Accept moves a pending (or previously rejected) request addressed to
// userID into the accepted state.
func (s *Service) Accept(ctx context.Context, userID, requestID int64) (*domain.Friend, error) {
	request, err := s.loadIncoming(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status == domain.FriendStatusAccepted {
		return nil, ErrRequestNotFound
	}

	if err := s.friends.UpdateStatus(ctx, request.ID, domain.FriendStatusAccepted); err != nil {
		return nil, err
	}
	request.Status = domain.FriendStatusAccepted

	s.notifier.NotifyFriendRequestAccepted(request)
	return request, nil
}

func (s *Service) Reject(ctx context.Context, userID, requestID int64) (*domain.Friend, error) {
	request, err := s.loadIncoming(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.FriendStatusPending {
		return nil, ErrRequestNotFound
	}

	if err := s.friends.UpdateStatus(ctx, request.ID, domain.FriendStatusRejected); err != nil {
		return nil, err
	}
	request.Status = domain.FriendStatusRejected
	return request, nil
}

func (s *Service) ListFriends(ctx context.Context, userID int64, limit, offset int, online OnlineChecker) ([]FriendUserResponse, error) {
	edges, err := s.friends.ListAccepted(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	out := make([]FriendUserResponse, 0, len(edges))
	for _, e := range edges {
		friend := e.Sender
		if e.SenderID == userID {
			friend = e.Receiver
		}
		if friend == nil {
			continue
		}
		out = append(out, FriendUserResponse{
			ID:       friend.ID,
			Username: friend.Username,
			Email:    friend.Email,
			IsOnline: online.IsOnline(friend.ID),
		})
	}
	return out, nil
}

func (s *Service) ListIncoming(ctx context.Context, userID int64, limit, offset int) ([]domain.Friend, error) {
	return s.friends.ListPendingIncoming(ctx, userID, limit, offset)
}

func (s *Service) ListOutgoing(ctx context.Context, userID int64, limit, offset int) ([]domain.Friend, error) {
	return s.friends.ListPendingOutgoing(ctx, userID, limit, offset)
}

func (s *Service) loadIncoming(ctx context.Context, userID, requestID int64) (*domain.Friend, error) {
	request, err := s.friends.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if request.ReceiverID != userID {
		return nil, ErrRequestNotFound
	}
	return request, nil
}
