package messages

import "errors"

var (
	ErrNotFriends        = errors.New("can only message accepted friends")
	ErrCannotMessageSelf = errors.New("cannot send message to yourself")
	ErrEmptyContent      = errors.New("message content cannot be empty")
)
