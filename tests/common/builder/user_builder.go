//go:build unit || e2e

package builder

import (
	domuser "marketplace-api/internal/domain/user"
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserBuilder struct {
	Username     string
	Email        string
	Password     string
	PasswordHash string
	Role         string
	IsActive     bool
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Username:     "testuser",
		Email:        "test@example.com",
		Password:     "password123",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         "customer",
		IsActive:     true,
	}
}

func (u *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(u)
	return u
}

// Build methods
func (u *UserBuilder) BuildDomain() (*domuser.User, error) {
	username, err := domuser.NewUsername(u.Username)
	if err != nil {
		return nil, err
	}
	email, err := domuser.NewEmail(u.Email)
	if err != nil {
		return nil, err
	}
	role, err := domuser.NewRole(u.Role)
	if err != nil {
		return nil, err
	}
	return domuser.NewUser(username, email, u.PasswordHash, role), nil
}

func (u *UserBuilder) BuildRegistrationDTO() reqdto.RegistrationRequest {
	return reqdto.RegistrationRequest{
		Username:         u.Username,
		Email:            u.Email,
		Password:         u.Password,
		RepeatedPassword: u.Password,
		Type:             u.Role,
	}
}

func (u *UserBuilder) BuildLoginDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Username: u.Username,
		Password: u.Password,
	}
}

func (u *UserBuilder) BuildAuthorizedView() *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       uuid.New(),
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}

func (u *UserBuilder) BuildSnapshot() *shared.UserSnapshot {
	return &shared.UserSnapshot{
		ID:       uuid.New(),
		Username: u.Username,
		Role:     domuser.Role(u.Role),
		IsActive: u.IsActive,
	}
}

// Fluent builder methods
func (u *UserBuilder) WithUsername(username string) *UserBuilder {
	u.Username = username
	return u
}

func (u *UserBuilder) WithEmail(email string) *UserBuilder {
	u.Email = email
	return u
}

func (u *UserBuilder) WithPassword(password string) *UserBuilder {
	u.Password = password
	return u
}

func (u *UserBuilder) WithRole(role string) *UserBuilder {
	u.Role = role
	return u
}

func (u *UserBuilder) AsBusiness() *UserBuilder {
	u.Role = "business"
	return u
}

func (u *UserBuilder) AsInactive() *UserBuilder {
	u.IsActive = false
	return u
}
