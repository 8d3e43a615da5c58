package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a business user. One review per
// (reviewer, business) pair; the store backs this with a unique constraint.
type Review struct {
	id             uuid.UUID
	businessUserID uuid.UUID
	reviewerID     uuid.UUID
	rating         Rating
	description    Description
	createdAt      time.Time
	updatedAt      time.Time
}

func NewReview(businessUserID, reviewerID uuid.UUID, ratingValue int, descriptionText string) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	description, err := NewDescription(descriptionText)
	if err != nil {
		return nil, err
	}

	return &Review{
		id:             uuid.New(),
		businessUserID: businessUserID,
		reviewerID:     reviewerID,
		rating:         rating,
		description:    description,
	}, nil
}

func (r *Review) ID() uuid.UUID             { return r.id }
func (r *Review) BusinessUserID() uuid.UUID { return r.businessUserID }
func (r *Review) ReviewerID() uuid.UUID     { return r.reviewerID }
func (r *Review) Rating() Rating            { return r.rating }
func (r *Review) Description() Description  { return r.description }
func (r *Review) CreatedAt() time.Time      { return r.createdAt }
func (r *Review) UpdatedAt() time.Time      { return r.updatedAt }
