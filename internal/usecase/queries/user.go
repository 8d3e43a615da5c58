package queries

import (
	"context"

	"github.com/google/uuid"
)

type UserReadStore interface {
	FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*AuthorizedUserView, error)
	FindCredentialsByUsername(ctx context.Context, username string) (*UserCredentials, error)
}

// UserCredentials is the login lookup row. The hash never leaves the
// usecase layer.
type UserCredentials struct {
	ID           uuid.UUID
	Role         string
	PasswordHash string
	IsActive     bool
}
