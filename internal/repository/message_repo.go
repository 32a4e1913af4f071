package repository

import (
	"context"

	"splitpath/internal/domain"

	"gorm.io/gorm"
)

// MessageRepository is the durable message store. The realtime layer only
// notifies about what this repository has already persisted.
type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	var m domain.Message
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &m, nil
}

// MarkRead marks the given messages read, but only those addressed to the
// reader and not already read. It returns the messages actually updated.
func (r *MessageRepository) MarkRead(ctx context.Context, ids []int64, readerID int64) ([]domain.Message, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var affected []domain.Message
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id IN ?", ids).
			Where("to_id = ?", readerID).
			Where("read = ?", false).
			Find(&affected).Error; err != nil {
			return err
		}
		if len(affected) == 0 {
			return nil
		}

		updatedIDs := make([]int64, 0, len(affected))
		for i := range affected {
			updatedIDs = append(updatedIDs, affected[i].ID)
			affected[i].Read = true
		}

		return tx.Model(&domain.Message{}).
			Where("id IN ?", updatedIDs).
			Update("read", true).Error
	})
	if err != nil {
		return nil, err
	}
	return affected, nil
}

func (r *MessageRepository) FindUnreadFrom(ctx context.Context, fromID, toID int64) ([]domain.Message, error) {
	var msgs []domain.Message
	tx := r.db.WithContext(ctx).
		Where("from_id = ? AND to_id = ? AND read = ?", fromID, toID, false).
		Order("created_at ASC").
		Find(&msgs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return msgs, nil
}

// ListBetween returns messages between two users, newest first, optionally
// only those older than beforeID for cursor pagination.
func (r *MessageRepository) ListBetween(ctx context.Context, userA, userB int64, limit int, beforeID *int64) ([]domain.Message, error) {
	q := r.db.WithContext(ctx).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)",
			userA, userB, userB, userA)
	if beforeID != nil {
		q = q.Where("id < ?", *beforeID)
	}

	var msgs []domain.Message
	tx := q.Order("id DESC").Limit(limit).Find(&msgs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return msgs, nil
}
