package friends

type CreateFriendRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type FriendUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsOnline bool   `json:"is_online"`
}
