package auth

import (
	"context"

	"splitpath/internal/domain"
)

// UserRepositoryInterface is the users collaborator. The refresh-token hash
// accessors are the only durable state the credential issuer owns.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetRefreshTokenHash(ctx context.Context, userID int64) (*string, error)
	SetRefreshTokenHash(ctx context.Context, userID int64, hash *string) error
}
