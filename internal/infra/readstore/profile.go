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

type ProfileReadStore struct {
	db db.DBTX
}

func NewProfileReadStore(dbtx db.DBTX) *ProfileReadStore {
	return &ProfileReadStore{db: dbtx}
}

const profileViewQuery = `
	SELECT p.user_id, u.username, p.first_name, p.last_name, p.file,
	       p.location, p.tel, p.description, p.working_hours,
	       u.role, u.email, p.created_at
	FROM profiles p
	JOIN users u ON u.id = p.user_id
`

func (r *ProfileReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*queries.ProfileView, error) {
	query := profileViewQuery + "WHERE p.user_id = $1"
	view, err := scanProfileView(r.db.QueryRow(ctx, query, pgconv.UUIDToPgtype(userID)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("profile not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (r *ProfileReadStore) ListByType(ctx context.Context, role string) ([]*queries.ProfileView, error) {
	query := profileViewQuery + "WHERE u.role = $1\nORDER BY p.created_at DESC"
	rows, err := r.db.Query(ctx, query, role)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list profiles", err)
	}
	defer rows.Close()

	views := make([]*queries.ProfileView, 0, 8)
	for rows.Next() {
		view, err := scanProfileView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate profile rows", err)
	}
	return views, nil
}

func scanProfileView(row rowScanner) (*queries.ProfileView, error) {
	var (
		userID                                                pgtype.UUID
		username, firstName, lastName                         string
		file                                                  pgtype.Text
		location, tel, description, workingHours, role, email string
		createdAt                                             pgtype.Timestamptz
	)
	err := row.Scan(&userID, &username, &firstName, &lastName, &file,
		&location, &tel, &description, &workingHours, &role, &email, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan profile row", err)
	}
	return &queries.ProfileView{
		UserID:       uuid.UUID(userID.Bytes),
		Username:     username,
		FirstName:    firstName,
		LastName:     lastName,
		File:         pgconv.StringPtrFromPgtype(file),
		Location:     location,
		Tel:          tel,
		Description:  description,
		WorkingHours: workingHours,
		Type:         role,
		Email:        email,
		CreatedAt:    pgconv.TimeFromPgtype(createdAt),
	}, nil
}
