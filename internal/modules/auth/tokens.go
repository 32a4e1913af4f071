package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"splitpath/internal/domain"
	jwtpkg "splitpath/internal/pkg/jwt"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokensService issues and rotates the access/refresh pair. The refresh token
// is additionally stored as a bcrypt hash on the user row, which makes it
// revocable even though it is a self-contained JWT: clearing or overwriting
// the hash invalidates every previously issued refresh token.
type TokensService struct {
	users UserRepositoryInterface
	jwt   *jwtpkg.Service

	// Per-user locks serializing rotation. Without them two concurrent
	// Rotate calls could both compare against the pre-rotation hash and both
	// succeed, so the older token would never actually be revoked.
	mu       sync.Mutex
	rotating map[int64]*sync.Mutex
}

func NewTokensService(users UserRepositoryInterface, jwt *jwtpkg.Service) *TokensService {
	return &TokensService{
		users:    users,
		jwt:      jwt,
		rotating: make(map[int64]*sync.Mutex),
	}
}

// Issue builds a fresh pair for the user and persists the refresh-token hash,
// implicitly revoking any previously issued refresh token.
func (s *TokensService) Issue(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	hash, err := hashRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetRefreshTokenHash(ctx, user.ID, &hash); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Rotate validates the presented refresh token against both its signature and
// the stored hash, then issues a full new pair. A hash mismatch means the
// token was already rotated out (e.g. replay of an old token); the call is
// rejected but the current session is left intact.
func (s *TokensService) Rotate(ctx context.Context, userID int64, refreshToken string) (*TokenPair, *domain.User, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	stored, err := s.users.GetRefreshTokenHash(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}
	if stored == nil {
		return nil, nil, ErrUnauthenticated
	}

	if _, err := s.jwt.ValidateRefreshToken(refreshToken); err != nil {
		switch {
		case errors.Is(err, jwtpkg.ErrTokenExpired):
			return nil, nil, ErrTokenExpired
		default:
			return nil, nil, ErrTokenInvalid
		}
	}

	if !compareRefreshToken(*stored, refreshToken) {
		return nil, nil, ErrTokenInvalid
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrUnauthenticated
		}
		return nil, nil, err
	}

	pair, err := s.Issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// Revoke clears the stored hash. Idempotent: revoking an already logged-out
// user is a no-op.
func (s *TokensService) Revoke(ctx context.Context, userID int64) error {
	return s.users.SetRefreshTokenHash(ctx, userID, nil)
}

func (s *TokensService) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.rotating[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.rotating[userID] = lock
	}
	return lock
}

// bcrypt rejects inputs over 72 bytes and a signed JWT is always longer, so
// the token is folded through sha256 first. bcrypt's per-call random salt
// makes the stored hash non-deterministic; equality goes through bcrypt's own
// compare, never byte comparison.
func hashRefreshToken(token string) (string, error) {
	sum := sha256.Sum256([]byte(token))
	hash, err := bcrypt.GenerateFromPassword(sum[:], bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func compareRefreshToken(storedHash, token string) bool {
	sum := sha256.Sum256([]byte(token))
	return bcrypt.CompareHashAndPassword([]byte(storedHash), sum[:]) == nil
}
