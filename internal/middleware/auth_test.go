package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"splitpath/internal/domain"
	"splitpath/internal/pkg/jwt"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    42,
		Email: "alice@example.com",
		Role:  domain.RoleUser,
	}
}

func protectedRouter(jwtService *jwt.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuth(jwtService))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64("user_id"),
			"role":    c.GetString("role"),
		})
	})
	return router
}

func TestJWTAuth_ValidBearerToken(t *testing.T) {
	jwtService := jwt.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	token, err := jwtService.GenerateAccessToken(testUser())
	assert.NoError(t, err)

	router := protectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
	assert.Contains(t, w.Body.String(), "user")
}

func TestJWTAuth_ValidCookieToken(t *testing.T) {
	jwtService := jwt.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	token, _ := jwtService.GenerateAccessToken(testUser())

	router := protectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	// A refresh token is signed with a different secret and must never
	// authenticate an API request.
	jwtService := jwt.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	refreshToken, _ := jwtService.GenerateRefreshToken(testUser())

	router := protectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refreshToken)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	jwtService := jwt.New("access-secret", "refresh-secret", -time.Minute, 24*time.Hour)
	expired, _ := jwtService.GenerateAccessToken(testUser())

	router := protectedRouter(jwt.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuth_NoToken(t *testing.T) {
	jwtService := jwt.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	router := protectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	jwtService := jwt.New("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	router := protectedRouter(jwtService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc123")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
