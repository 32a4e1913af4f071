package realtime

import "splitpath/internal/domain"

// MessagingRelay delivers message-related events to the specific
// counterparts' private-chat connections. Everything here is fire-and-forget:
// the message store is the durable truth and a disconnected recipient simply
// fetches later.
type MessagingRelay struct {
	registry Registry
}

func NewMessagingRelay(registry Registry) *MessagingRelay {
	return &MessagingRelay{registry: registry}
}

// NotifyNewMessage emits new-message to whichever of sender and recipient are
// connected (zero, one, or both). Called only after the store has persisted
// the message.
func (r *MessagingRelay) NotifyNewMessage(msg *domain.Message) {
	event := NewMessageEvent(msg)
	notify(r.registry, NamespacePrivateChat, msg.FromID, event)
	notify(r.registry, NamespacePrivateChat, msg.ToID, event)
}

// NotifyMessagesRead groups the freshly read messages by original sender and
// emits one batched messages-read event per sender, plus one to the reader's
// own connection so their other devices sync read state.
func (r *MessagingRelay) NotifyMessagesRead(messages []domain.Message, readerID int64) {
	if len(messages) == 0 {
		return
	}

	bySender := make(map[int64][]int64)
	allIDs := make([]int64, 0, len(messages))
	for _, m := range messages {
		bySender[m.FromID] = append(bySender[m.FromID], m.ID)
		allIDs = append(allIDs, m.ID)
	}

	for senderID, ids := range bySender {
		if senderID == readerID {
			continue
		}
		notify(r.registry, NamespacePrivateChat, senderID, NewMessagesReadEvent(ids, readerID))
	}

	notify(r.registry, NamespacePrivateChat, readerID, NewMessagesReadEvent(allIDs, readerID))
}

// NotifyTypingStatus is a stateless pass-through to the receiver. No
// persistence, no retry.
func (r *MessagingRelay) NotifyTypingStatus(userID, receiverID int64, isTyping bool) {
	notify(r.registry, NamespacePrivateChat, receiverID, NewTypingEvent(userID, receiverID, isTyping))
}
