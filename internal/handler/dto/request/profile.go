package request

import "marketplace-api/internal/usecase/shared"

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	File         *string `json:"file"`
	Location     *string `json:"location"`
	Tel          *string `json:"tel"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours"`
}

func (r *UpdateProfileRequest) ToPatch() shared.ProfileFieldsPatch {
	return shared.ProfileFieldsPatch{
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		File:         r.File,
		Location:     r.Location,
		Tel:          r.Tel,
		Description:  r.Description,
		WorkingHours: r.WorkingHours,
	}
}
