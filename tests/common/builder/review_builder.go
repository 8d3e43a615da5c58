//go:build unit || e2e

package builder

import (
	"time"

	domreview "marketplace-api/internal/domain/review"
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	BusinessUserID uuid.UUID
	ReviewerID     uuid.UUID
	Rating         int
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	now := time.Now()
	return &ReviewBuilder{
		BusinessUserID: uuid.New(),
		ReviewerID:     uuid.New(),
		Rating:         5,
		Description:    "Excellent service!",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(r.BusinessUserID, r.ReviewerID, r.Rating, r.Description)
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		BusinessUserID: r.BusinessUserID,
		Rating:         r.Rating,
		Description:    r.Description,
	}
}

func (r *ReviewBuilder) BuildUpdateRequestDTO() reqdto.UpdateReviewRequest {
	return reqdto.UpdateReviewRequest{
		Rating:      r.Rating,
		Description: r.Description,
	}
}

func (r *ReviewBuilder) BuildView() *queries.ReviewView {
	return &queries.ReviewView{
		ID:             uuid.New(),
		BusinessUserID: r.BusinessUserID,
		ReviewerID:     r.ReviewerID,
		Rating:         r.Rating,
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (r *ReviewBuilder) BuildSnapshot() *shared.ReviewSnapshot {
	return &shared.ReviewSnapshot{
		ID:             uuid.New(),
		BusinessUserID: r.BusinessUserID,
		ReviewerID:     r.ReviewerID,
		Rating:         r.Rating,
		Description:    r.Description,
	}
}

// Fluent builder methods
func (r *ReviewBuilder) WithBusinessUserID(id uuid.UUID) *ReviewBuilder {
	r.BusinessUserID = id
	return r
}

func (r *ReviewBuilder) WithReviewerID(id uuid.UUID) *ReviewBuilder {
	r.ReviewerID = id
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithDescription(description string) *ReviewBuilder {
	r.Description = description
	return r
}

func (r *ReviewBuilder) AsPoorRating() *ReviewBuilder {
	r.Rating = 1
	r.Description = "Poor service"
	return r
}
