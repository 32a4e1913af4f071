package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"splitpath/internal/domain"
	jwtpkg "splitpath/internal/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) GetRefreshTokenHash(ctx context.Context, userID int64) (*string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *mockUserRepo) SetRefreshTokenHash(ctx context.Context, userID int64, hash *string) error {
	args := m.Called(ctx, userID, hash)
	return args.Error(0)
}

func serviceFixture(repo *mockUserRepo) *Service {
	jwtService := jwtpkg.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	tokens := NewTokensService(repo, jwtService)
	return NewService(repo, tokens)
}

func TestSignUp_Success(t *testing.T) {
	repo := new(mockUserRepo)
	service := serviceFixture(repo)

	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 1
	}).Return(nil)
	repo.On("SetRefreshTokenHash", mock.Anything, int64(1), mock.Anything).Return(nil)

	user, pair, err := service.SignUp(context.Background(), SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash, "hash never leaves the service")
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	repo.AssertExpectations(t)
}

func TestSignUp_NormalizesEmail(t *testing.T) {
	repo := new(mockUserRepo)
	service := serviceFixture(repo)

	repo.On("ExistsByEmail", mock.Anything, "  Alice@Example.COM ").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "alice@example.com"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.User).ID = 1
	}).Return(nil)
	repo.On("SetRefreshTokenHash", mock.Anything, int64(1), mock.Anything).Return(nil)

	user, _, err := service.SignUp(context.Background(), SignUpRequest{
		Username: "alice",
		Email:    "  Alice@Example.COM ",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepo)
	service := serviceFixture(repo)

	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

	_, _, err := service.SignUp(context.Background(), SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignIn_Success(t *testing.T) {
	repo := new(mockUserRepo)
	service := serviceFixture(repo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.DefaultCost)
	stored := &domain.User{ID: 1, Email: "alice@example.com", PasswordHash: string(hashed), Role: domain.RoleUser}

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)
	repo.On("SetRefreshTokenHash", mock.Anything, int64(1), mock.Anything).Return(nil)

	user, pair, err := service.SignIn(context.Background(), SignInRequest{
		Email:    "alice@example.com",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestSignIn_WrongPassword(t *testing.T) {
	repo := new(mockUserRepo)
	service := serviceFixture(repo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.DefaultCost)
	stored := &domain.User{ID: 1, Email: "alice@example.com", PasswordHash: string(hashed)}

	repo.On("GetByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

	_, _, err := service.SignIn(context.Background(), SignInRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignIn_UnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	service := serviceFixture(repo)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, _, err := service.SignIn(context.Background(), SignInRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	// Same error for unknown email and wrong password; no account probing.
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_ClearsStoredHash(t *testing.T) {
	repo := new(mockUserRepo)
	service := serviceFixture(repo)

	repo.On("SetRefreshTokenHash", mock.Anything, int64(1), (*string)(nil)).Return(nil)

	require.NoError(t, service.Logout(context.Background(), 1))
	repo.AssertExpectations(t)
}

func TestGetCurrentUser_StripsPasswordHash(t *testing.T) {
	repo := new(mockUserRepo)
	service := serviceFixture(repo)

	repo.On("GetByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, PasswordHash: "$2a$10$x"}, nil)

	user, err := service.GetCurrentUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)
}
