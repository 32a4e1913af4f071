package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"splitpath/internal/domain"
	jwtpkg "splitpath/internal/pkg/jwt"
	"splitpath/internal/pkg/response"
)

const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

type CookieConfig struct {
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// Handler manages all HTTP interactions for authentication. Tokens travel as
// two cookies, each capped at its own token's lifetime.
type Handler struct {
	service *Service
	tokens  *TokensService
	jwt     *jwtpkg.Service
	cookies CookieConfig
}

func NewHandler(service *Service, tokens *TokensService, jwt *jwtpkg.Service, cookies CookieConfig) *Handler {
	return &Handler{
		service: service,
		tokens:  tokens,
		jwt:     jwt,
		cookies: cookies,
	}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/sign-up", h.SignUp)
		authGroup.POST("/sign-in", h.SignIn)
		authGroup.GET("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/logout", h.Logout)
	protected.GET("/users/me", h.GetMe)
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, pair, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SIGNUP_FAILED", "Failed to sign up")
		return
	}

	h.setAuthCookies(c, pair)
	response.Success(c, http.StatusCreated, gin.H{"user": toUserResponse(user)})
}

func (h *Handler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, pair, err := h.service.SignIn(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "SIGNIN_FAILED", "Failed to sign in")
		return
	}

	h.setAuthCookies(c, pair)
	response.Success(c, http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// Refresh rotates the full pair from the refresh cookie. The subject comes
// out of the token's own claims; the rotation itself re-checks the stored
// hash, so a stale token fails even if its signature is still valid.
func (h *Handler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(RefreshTokenCookie)
	if err != nil || raw == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Refresh token is required")
		return
	}

	claims, err := h.jwt.ValidateRefreshToken(raw)
	if err != nil {
		if errors.Is(err, jwtpkg.ErrTokenExpired) {
			response.Error(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Refresh token expired")
			return
		}
		response.Error(c, http.StatusUnauthorized, "TOKEN_INVALID", "Refresh token invalid")
		return
	}

	pair, user, err := h.tokens.Rotate(c.Request.Context(), claims.UserID, raw)
	if err != nil {
		switch {
		case errors.Is(err, ErrTokenExpired):
			response.Error(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Refresh token expired")
		case errors.Is(err, ErrTokenInvalid):
			response.Error(c, http.StatusUnauthorized, "TOKEN_INVALID", "Refresh token invalid")
		case errors.Is(err, ErrUnauthenticated):
			response.Error(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Session revoked")
		default:
			response.Error(c, http.StatusInternalServerError, "REFRESH_FAILED", "Failed to refresh session")
		}
		return
	}

	h.setAuthCookies(c, pair)
	response.Success(c, http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h *Handler) Logout(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.Logout(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "LOGOUT_FAILED", "Failed to logout")
		return
	}

	h.clearAuthCookies(c)
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) GetMe(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toUserResponse(user)})
}

func (h *Handler) setAuthCookies(c *gin.Context, pair *TokenPair) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(AccessTokenCookie, pair.AccessToken, int(h.jwt.AccessTTL().Seconds()), h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(RefreshTokenCookie, pair.RefreshToken, int(h.jwt.RefreshTTL().Seconds()), h.cookies.Path, "", h.cookies.Secure, true)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(h.cookies.SameSite)
	c.SetCookie(AccessTokenCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(RefreshTokenCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Username:      u.Username,
		Role:          string(u.Role),
		EmailVerified: u.EmailVerified,
	}
}
