package repository

import (
	"context"

	"marketplace-api/internal/infra"
	"marketplace-api/internal/infra/db"
	"marketplace-api/internal/pkg/pgconv"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ProfileRepository struct{}

func NewProfileRepository() shared.ProfileRepository {
	return &ProfileRepository{}
}

// CreateEmpty seeds the profile row at registration time so profile
// reads never have to handle a missing row.
func (r *ProfileRepository) CreateEmpty(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	const query = `INSERT INTO profiles (user_id) VALUES ($1)`
	if _, err := tx.Exec(ctx, query, pgconv.UUIDToPgtype(userID)); err != nil {
		return infra.WrapRepoErr("failed to insert profile", err)
	}
	return nil
}

func (r *ProfileRepository) UpdateFields(ctx context.Context, tx db.DBTX, userID uuid.UUID, fields shared.ProfileFieldsPatch) error {
	const query = `
		UPDATE profiles
		SET first_name    = COALESCE($2, first_name),
		    last_name     = COALESCE($3, last_name),
		    file          = COALESCE($4, file),
		    location      = COALESCE($5, location),
		    tel           = COALESCE($6, tel),
		    description   = COALESCE($7, description),
		    working_hours = COALESCE($8, working_hours)
		WHERE user_id = $1
	`
	tag, err := tx.Exec(ctx, query,
		pgconv.UUIDToPgtype(userID),
		pgconv.StringPtrToPgtype(fields.FirstName),
		pgconv.StringPtrToPgtype(fields.LastName),
		pgconv.StringPtrToPgtype(fields.File),
		pgconv.StringPtrToPgtype(fields.Location),
		pgconv.StringPtrToPgtype(fields.Tel),
		pgconv.StringPtrToPgtype(fields.Description),
		pgconv.StringPtrToPgtype(fields.WorkingHours),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update profile", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("profile not found", nil, infra.KindNotFound)
	}
	return nil
}
