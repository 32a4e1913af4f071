package friends

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRequestNotFound = errors.New("friend request not found")
	ErrSelfRequest     = errors.New("cannot send friend request to yourself")
	ErrRequestExists   = errors.New("friend request already exists")
)
