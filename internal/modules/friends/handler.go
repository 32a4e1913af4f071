package friends

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"splitpath/internal/domain"
	"splitpath/internal/pkg/response"
)

type Handler struct {
	service *Service
	online  OnlineChecker
}

func NewHandler(service *Service, online OnlineChecker) *Handler {
	return &Handler{service: service, online: online}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	friendsGroup := protected.Group("/friends")
	{
		friendsGroup.GET("", h.ListFriends)
		friendsGroup.POST("/requests", h.SendRequest)
		friendsGroup.GET("/requests/incoming", h.ListIncoming)
		friendsGroup.GET("/requests/outgoing", h.ListOutgoing)
		friendsGroup.POST("/requests/:id/accept", h.Accept)
		friendsGroup.POST("/requests/:id/reject", h.Reject)
	}
}

func (h *Handler) SendRequest(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req CreateFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	request, err := h.service.SendRequest(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, ErrSelfRequest):
			response.Error(c, http.StatusBadRequest, "SELF_REQUEST", "Cannot send friend request to yourself")
		case errors.Is(err, ErrRequestExists):
			response.Error(c, http.StatusConflict, "REQUEST_EXISTS", "Friend request already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "FRIENDS_ERROR", "Failed to send friend request")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": request})
}

func (h *Handler) Accept(c *gin.Context) {
	h.resolveRequest(c, h.service.Accept)
}

func (h *Handler) Reject(c *gin.Context) {
	h.resolveRequest(c, h.service.Reject)
}

func (h *Handler) ListFriends(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, offset := pagination(c)

	items, err := h.service.ListFriends(c.Request.Context(), userID, limit, offset, h.online)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to list friends")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"friends": items})
}

func (h *Handler) ListIncoming(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, offset := pagination(c)

	items, err := h.service.ListIncoming(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": items})
}

func (h *Handler) ListOutgoing(c *gin.Context) {
	userID := c.GetInt64("user_id")
	limit, offset := pagination(c)

	items, err := h.service.ListOutgoing(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to list requests")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": items})
}

func (h *Handler) resolveRequest(c *gin.Context, resolve func(ctx context.Context, userID, requestID int64) (*domain.Friend, error)) {
	userID := c.GetInt64("user_id")

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid request ID")
		return
	}

	request, err := resolve(c.Request.Context(), userID, requestID)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Friend request not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FRIENDS_ERROR", "Failed to update friend request")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": request})
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
