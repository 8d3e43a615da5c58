package request

import (
	"marketplace-api/internal/domain/auth"
	"marketplace-api/internal/usecase/commands"
)

type RegistrationRequest struct {
	Username         string `json:"username" binding:"required"`
	Email            string `json:"email" binding:"required"`
	Password         string `json:"password" binding:"required"`
	RepeatedPassword string `json:"repeated_password" binding:"required"`
	Type             string `json:"type" binding:"required"`
}

func (r *RegistrationRequest) ToCommand() commands.RegisterRequest {
	return commands.RegisterRequest{
		Username:         r.Username,
		Email:            r.Email,
		Password:         r.Password,
		RepeatedPassword: r.RepeatedPassword,
		Type:             r.Type,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) ToDomain() (auth.Credentials, error) {
	return auth.NewCredentials(r.Username, r.Password)
}
