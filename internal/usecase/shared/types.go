package shared

import (
	"marketplace-api/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Write-side snapshots prevent dependency on read-side query types (CQRS separation)

type OfferSnapshot struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

type DetailSnapshot struct {
	ID                 uuid.UUID
	OfferID            uuid.UUID
	OfferOwnerID       uuid.UUID
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	OfferType          string
	Features           []string
}

type OrderSnapshot struct {
	ID             uuid.UUID
	CustomerUserID uuid.UUID
	BusinessUserID uuid.UUID
	Status         string
}

type ReviewSnapshot struct {
	ID             uuid.UUID
	BusinessUserID uuid.UUID
	ReviewerID     uuid.UUID
	Rating         int
	Description    string
}

type UserSnapshot struct {
	ID       uuid.UUID
	Username string
	Role     user.Role
	IsActive bool
}

// OfferFieldsPatch holds the optional top-level offer fields of a partial
// update. Nil means "leave untouched".
type OfferFieldsPatch struct {
	Title       *string
	Description *string
	Image       *string
}

func (p OfferFieldsPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Image == nil
}

// DetailPatch holds the optional package fields of a tier-keyed partial
// update. Features are handled separately through the feature links.
type DetailPatch struct {
	Title              *string
	Revisions          *int
	DeliveryTimeInDays *int
	Price              *decimal.Decimal
}

type ProfileFieldsPatch struct {
	FirstName    *string
	LastName     *string
	File         *string
	Location     *string
	Tel          *string
	Description  *string
	WorkingHours *string
}
