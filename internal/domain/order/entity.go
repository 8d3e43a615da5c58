package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourcePackage carries the fields of the chosen package at the moment of
// purchase. The order copies them verbatim and never resyncs with the
// package afterwards.
type SourcePackage struct {
	DetailID           uuid.UUID
	OfferOwnerID       uuid.UUID
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	OfferType          string
	Features           []string
}

// Order is an immutable point-in-time snapshot of one package plus a
// mutable status.
type Order struct {
	id                 uuid.UUID
	customerUserID     uuid.UUID
	businessUserID     uuid.UUID
	offerDetailID      uuid.UUID
	title              string
	revisions          int
	deliveryTimeInDays int
	price              decimal.Decimal
	offerType          string
	features           []string
	status             Status
	createdAt          time.Time
	updatedAt          time.Time
}

// NewOrder materializes src into a fresh order for the buying customer.
// The business party is derived from the package's offer owner, never
// supplied by the caller.
func NewOrder(customerUserID uuid.UUID, src SourcePackage) *Order {
	features := make([]string, len(src.Features))
	copy(features, src.Features)

	return &Order{
		id:                 uuid.New(),
		customerUserID:     customerUserID,
		businessUserID:     src.OfferOwnerID,
		offerDetailID:      src.DetailID,
		title:              src.Title,
		revisions:          src.Revisions,
		deliveryTimeInDays: src.DeliveryTimeInDays,
		price:              src.Price,
		offerType:          src.OfferType,
		features:           features,
		status:             StatusInProgress,
	}
}

func (o *Order) ID() uuid.UUID             { return o.id }
func (o *Order) CustomerUserID() uuid.UUID { return o.customerUserID }
func (o *Order) BusinessUserID() uuid.UUID { return o.businessUserID }
func (o *Order) OfferDetailID() uuid.UUID  { return o.offerDetailID }
func (o *Order) Title() string             { return o.title }
func (o *Order) Revisions() int            { return o.revisions }
func (o *Order) DeliveryTimeInDays() int   { return o.deliveryTimeInDays }
func (o *Order) Price() decimal.Decimal    { return o.price }
func (o *Order) OfferType() string         { return o.offerType }
func (o *Order) Features() []string        { return o.features }
func (o *Order) Status() Status            { return o.status }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }

// Transition advances the order along the linear status chain.
func (o *Order) Transition(next Status) error {
	if !next.IsValid() {
		return ErrInvalidStatus
	}
	if !o.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.status = next
	return nil
}
