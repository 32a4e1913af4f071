package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthenticated means no usable credential: missing cookie, unknown
	// user, or a session that was revoked (no stored refresh-token hash).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrTokenExpired and ErrTokenInvalid mirror the jwt package taxonomy so
	// handlers only depend on this module. ErrTokenInvalid also covers a
	// refresh token whose stored hash no longer matches, i.e. a token that
	// was rotated out from under the caller.
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)
