package realtime

import "splitpath/internal/domain"

// Server-to-client event payloads. Every event carries a type tag so clients
// can demultiplex a single socket.

type PresenceEvent struct {
	Type     string `json:"type"`
	UserID   int64  `json:"user_id"`
	IsOnline bool   `json:"is_online"`
}

func NewPresenceEvent(userID int64, isOnline bool) *PresenceEvent {
	return &PresenceEvent{Type: "presence-changed", UserID: userID, IsOnline: isOnline}
}

type MessageEvent struct {
	Type    string          `json:"type"`
	Message *domain.Message `json:"message"`
}

func NewMessageEvent(msg *domain.Message) *MessageEvent {
	return &MessageEvent{Type: "new-message", Message: msg}
}

type MessagesReadEvent struct {
	Type       string  `json:"type"`
	MessageIDs []int64 `json:"message_ids"`
	ReaderID   int64   `json:"reader_id"`
}

func NewMessagesReadEvent(messageIDs []int64, readerID int64) *MessagesReadEvent {
	return &MessagesReadEvent{Type: "messages-read", MessageIDs: messageIDs, ReaderID: readerID}
}

type TypingEvent struct {
	Type       string `json:"type"`
	UserID     int64  `json:"user_id"`
	ReceiverID int64  `json:"receiver_id"`
	IsTyping   bool   `json:"is_typing"`
}

func NewTypingEvent(userID, receiverID int64, isTyping bool) *TypingEvent {
	return &TypingEvent{Type: "typing-status", UserID: userID, ReceiverID: receiverID, IsTyping: isTyping}
}

type FriendRequestEvent struct {
	Type    string         `json:"type"`
	Request *domain.Friend `json:"request"`
}

func NewFriendRequestEvent(f *domain.Friend) *FriendRequestEvent {
	return &FriendRequestEvent{Type: "new-friend-request", Request: f}
}

func NewFriendRequestAcceptedEvent(f *domain.Friend) *FriendRequestEvent {
	return &FriendRequestEvent{Type: "friend-request-accepted", Request: f}
}

type PongEvent struct {
	Type string `json:"type"`
}

func NewPongEvent() *PongEvent {
	return &PongEvent{Type: "pong"}
}
