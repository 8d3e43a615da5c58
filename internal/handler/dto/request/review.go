package request

import (
	"marketplace-api/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BusinessUserID uuid.UUID `json:"business_user" binding:"required"`
	Rating         int       `json:"rating" binding:"required,min=1,max=5"`
	Description    string    `json:"description" binding:"required,max=255"`
}

func (r *CreateReviewRequest) ToCommand() commands.CreateReviewRequest {
	return commands.CreateReviewRequest{
		BusinessUserID: r.BusinessUserID,
		Rating:         r.Rating,
		Description:    r.Description,
	}
}

type UpdateReviewRequest struct {
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Description string `json:"description" binding:"required,max=255"`
}

func (r *UpdateReviewRequest) ToCommand() commands.UpdateReviewRequest {
	return commands.UpdateReviewRequest{
		Rating:      r.Rating,
		Description: r.Description,
	}
}
