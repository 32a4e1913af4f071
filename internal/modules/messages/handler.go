package messages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"splitpath/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	messagesGroup := protected.Group("/messages")
	{
		messagesGroup.POST("", h.Send)
		messagesGroup.POST("/read", h.MarkRead)
		messagesGroup.GET("/chat/:userId", h.GetChat)
		messagesGroup.GET("/unread/:userId", h.Unread)
	}
}

func (h *Handler) Send(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	msg, err := h.service.Send(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFriends):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Can only message accepted friends")
		case errors.Is(err, ErrCannotMessageSelf), errors.Is(err, ErrEmptyContent):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "SEND_FAILED", "Failed to send message")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": msg})
}

func (h *Handler) MarkRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updated, err := h.service.MarkRead(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "MARK_READ_FAILED", "Failed to mark messages read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": updated})
}

func (h *Handler) GetChat(c *gin.Context) {
	userID := c.GetInt64("user_id")

	otherID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var beforeID *int64
	if v := c.Query("before_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "before_id must be integer")
			return
		}
		beforeID = &id
	}

	msgs, err := h.service.GetChat(c.Request.Context(), userID, otherID, limit, beforeID)
	if err != nil {
		if errors.Is(err, ErrNotFriends) {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Can only view messages between friends")
			return
		}
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to load chat")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) Unread(c *gin.Context) {
	userID := c.GetInt64("user_id")

	fromID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	msgs, err := h.service.UnreadFrom(c.Request.Context(), userID, fromID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to load unread messages")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"messages": msgs})
}
