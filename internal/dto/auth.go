package dto

// RegisterRequest is the payload for creating a new user.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userID"`
}

// UserResponse is the API representation of a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
