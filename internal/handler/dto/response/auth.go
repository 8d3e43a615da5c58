package response

import (
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type AuthResponse struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserID   uuid.UUID `json:"user_id"`
}

func FromAuthResult(r *commands.AuthResult) *AuthResponse {
	return &AuthResponse{
		Token:    r.Token,
		Username: r.Username,
		Email:    r.Email,
		UserID:   r.UserID,
	}
}

type CurrentUserResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Type     string    `json:"type"`
}

func FromAuthorizedUser(v *queries.AuthorizedUserView) *CurrentUserResponse {
	return &CurrentUserResponse{
		UserID:   v.ID,
		Username: v.Username,
		Email:    v.Email,
		Type:     v.Role,
	}
}
