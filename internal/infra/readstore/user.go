package readstore

import (
	"context"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindAuthorizedByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `SELECT id, username, email, role, is_active FROM users WHERE id = $1`
	var (
		userID                pgtype.UUID
		username, email, role string
		isActive              bool
	)
	err := r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(id)).
		Scan(&userID, &username, &email, &role, &isActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user", err)
	}
	return &queries.AuthorizedUserView{
		ID:       uuid.UUID(userID.Bytes),
		Username: username,
		Email:    email,
		Role:     role,
		IsActive: isActive,
	}, nil
}

func (r *UserReadStore) FindCredentialsByUsername(ctx context.Context, username string) (*queries.UserCredentials, error) {
	const query = `SELECT id, role, password_hash, is_active FROM users WHERE username = $1`
	var (
		userID     pgtype.UUID
		role, hash string
		isActive   bool
	)
	err := r.db.QueryRow(ctx, query, username).Scan(&userID, &role, &hash, &isActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user credentials", err)
	}
	return &queries.UserCredentials{
		ID:           uuid.UUID(userID.Bytes),
		Role:         role,
		PasswordHash: hash,
		IsActive:     isActive,
	}, nil
}
