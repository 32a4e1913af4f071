package repository

import (
	"context"

	"splitpath/internal/domain"

	"gorm.io/gorm"
)

// FriendRepository is the friends directory: it owns the friendship edges and
// answers who is an accepted friend of whom.
type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

func (r *FriendRepository) Create(ctx context.Context, f *domain.Friend) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FriendRepository) GetByID(ctx context.Context, id int64) (*domain.Friend, error) {
	var f domain.Friend
	tx := r.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		First(&f, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &f, nil
}

// GetBetween returns the edge between two users regardless of direction, or
// gorm.ErrRecordNotFound.
func (r *FriendRepository) GetBetween(ctx context.Context, userA, userB int64) (*domain.Friend, error) {
	var f domain.Friend
	tx := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		First(&f)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &f, nil
}

func (r *FriendRepository) UpdateStatus(ctx context.Context, id int64, status domain.FriendStatus) error {
	return r.db.WithContext(ctx).Model(&domain.Friend{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *FriendRepository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&domain.Friend{}).
		Where("status = ?", domain.FriendStatusAccepted).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}

// ListAcceptedFriendIDs returns up to limit ids of users the given user has an
// accepted friendship with. Presence fan-out is best-effort, so callers pass a
// bound rather than paging through the full set.
func (r *FriendRepository) ListAcceptedFriendIDs(ctx context.Context, userID int64, limit int) ([]int64, error) {
	var edges []domain.Friend
	tx := r.db.WithContext(ctx).
		Where("status = ?", domain.FriendStatusAccepted).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Limit(limit).
		Find(&edges)
	if tx.Error != nil {
		return nil, tx.Error
	}

	ids := make([]int64, 0, len(edges))
	for _, e := range edges {
		if e.SenderID == userID {
			ids = append(ids, e.ReceiverID)
		} else {
			ids = append(ids, e.SenderID)
		}
	}
	return ids, nil
}

func (r *FriendRepository) ListAccepted(ctx context.Context, userID int64, limit, offset int) ([]domain.Friend, error) {
	var edges []domain.Friend
	tx := r.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		Where("status = ?", domain.FriendStatusAccepted).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Limit(limit).Offset(offset).
		Find(&edges)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return edges, nil
}

func (r *FriendRepository) ListPendingIncoming(ctx context.Context, userID int64, limit, offset int) ([]domain.Friend, error) {
	return r.listPending(ctx, "receiver_id", userID, limit, offset)
}

func (r *FriendRepository) ListPendingOutgoing(ctx context.Context, userID int64, limit, offset int) ([]domain.Friend, error) {
	return r.listPending(ctx, "sender_id", userID, limit, offset)
}

func (r *FriendRepository) listPending(ctx context.Context, column string, userID int64, limit, offset int) ([]domain.Friend, error) {
	var edges []domain.Friend
	tx := r.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		Where(column+" = ?", userID).
		Where("status = ?", domain.FriendStatusPending).
		Limit(limit).Offset(offset).
		Find(&edges)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return edges, nil
}
