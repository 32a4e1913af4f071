package domain

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64    `json:"id" gorm:"primaryKey"`
	Email        string   `json:"email" validate:"required,email" gorm:"uniqueIndex;not null"`
	Username     string   `json:"username" gorm:"not null"`
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null"`
	Role         UserRole `json:"role" gorm:"default:'user'"`

	EmailVerified bool `json:"email_verified" gorm:"default:false"`

	// bcrypt hash of the currently valid refresh token; nil means no active
	// session (logged out or never signed in). At most one per user: issuing
	// a new pair overwrites it, revoking the previous refresh token.
	RefreshTokenHash *string `json:"-" gorm:"column:refresh_token_hash"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }
