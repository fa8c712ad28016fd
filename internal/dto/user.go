package dto

import "github.com/yukikurage/lift-project-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	}
}

// RegisterRequest is the sign-up form
type RegisterRequest struct {
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// LoginRequest is the login form
type LoginRequest struct {
	Email    string `json:"loginEmail" form:"loginEmail"`
	Password string `json:"loginPassword" form:"loginPassword"`
}
