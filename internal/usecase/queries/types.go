package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DetailRef is the id/url pair an offer listing exposes per package.
type DetailRef struct {
	ID  uuid.UUID `json:"id"`
	URL string    `json:"url"`
}

// CreatorSummary is the embedded creator block of an offer list item.
type CreatorSummary struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferListItem is the list projection: package refs plus derived
// aggregates. MinPrice/MinDeliveryTime stay nil when no package carries
// a value, never zero.
type OfferListItem struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user"`
	Title           string           `json:"title"`
	Image           *string          `json:"image"`
	Description     string           `json:"description"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Details         []DetailRef      `json:"details"`
	MinPrice        *decimal.Decimal `json:"min_price"`
	MinDeliveryTime *int             `json:"min_delivery_time"`
	UserDetails     CreatorSummary   `json:"user_details"`
}

// OfferView is the single-offer projection: same shape minus the creator
// summary.
type OfferView struct {
	ID              uuid.UUID        `json:"id"`
	UserID          uuid.UUID        `json:"user"`
	Title           string           `json:"title"`
	Image           *string          `json:"image"`
	Description     string           `json:"description"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Details         []DetailRef      `json:"details"`
	MinPrice        *decimal.Decimal `json:"min_price"`
	MinDeliveryTime *int             `json:"min_delivery_time"`
}

// DetailView is the full package body.
type DetailView struct {
	ID                 uuid.UUID       `json:"id"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          string          `json:"offer_type"`
}

// OrderView mirrors the order's materialized snapshot plus status.
type OrderView struct {
	ID                 uuid.UUID       `json:"id"`
	CustomerUserID     uuid.UUID       `json:"customer_user"`
	BusinessUserID     uuid.UUID       `json:"business_user"`
	Title              string          `json:"title"`
	Revisions          int             `json:"revisions"`
	DeliveryTimeInDays int             `json:"delivery_time_in_days"`
	Price              decimal.Decimal `json:"price"`
	Features           []string        `json:"features"`
	OfferType          string          `json:"offer_type"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

type ReviewView struct {
	ID             uuid.UUID `json:"id"`
	BusinessUserID uuid.UUID `json:"business_user"`
	ReviewerID     uuid.UUID `json:"reviewer"`
	Rating         int       `json:"rating"`
	Description    string    `json:"description"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProfileView joins the profile row with its user's identity fields.
type ProfileView struct {
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
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthorizedUserView carries what authentication needs per request.
type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}

// BaseInfoView is the public platform statistics block. AverageRating is
// pre-rounded to one decimal and 0 when no reviews exist.
type BaseInfoView struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}
