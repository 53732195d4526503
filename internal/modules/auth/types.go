package auth

import "github.com/nilehomes/landing/internal/models"

type LoginDTO struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type userResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type verifyResponse struct {
	Valid bool         `json:"valid"`
	User  userResponse `json:"user"`
}

// LoginResult is a freshly issued token and the admin it belongs to.
type LoginResult struct {
	Token string
	User  *models.AdminUser
}

func toUserResponse(u *models.AdminUser) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: u.Role}
}
