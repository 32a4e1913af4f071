package messages

type SendMessageRequest struct {
	ToUserID int64  `json:"to_user_id" binding:"required"`
	Content  string `json:"content" binding:"required,max=4000"`
}

type MarkReadRequest struct {
	MessageIDs []int64 `json:"message_ids" binding:"required,min=1"`
}
