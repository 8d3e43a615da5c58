package response

import (
	"time"

	"marketplace-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// BusinessProfileResponse is the business directory projection.
type BusinessProfileResponse struct {
	UserID       uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         *string   `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
}

func FromProfileViewsBusiness(views []*queries.ProfileView) []*BusinessProfileResponse {
	res := make([]*BusinessProfileResponse, len(views))
	for i, v := range views {
		res[i] = &BusinessProfileResponse{
			UserID:       v.UserID,
			Username:     v.Username,
			FirstName:    v.FirstName,
			LastName:     v.LastName,
			File:         v.File,
			Location:     v.Location,
			Tel:          v.Tel,
			Description:  v.Description,
			WorkingHours: v.WorkingHours,
			Type:         v.Type,
		}
	}
	return res
}

// CustomerProfileResponse is the slimmer customer directory projection.
type CustomerProfileResponse struct {
	UserID     uuid.UUID `json:"user"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	File       *string   `json:"file"`
	UploadedAt time.Time `json:"uploaded_at"`
	Type       string    `json:"type"`
}

func FromProfileViewsCustomer(views []*queries.ProfileView) []*CustomerProfileResponse {
	res := make([]*CustomerProfileResponse, len(views))
	for i, v := range views {
		res[i] = &CustomerProfileResponse{
			UserID:     v.UserID,
			Username:   v.Username,
			FirstName:  v.FirstName,
			LastName:   v.LastName,
			File:       v.File,
			UploadedAt: v.CreatedAt,
			Type:       v.Type,
		}
	}
	return res
}
