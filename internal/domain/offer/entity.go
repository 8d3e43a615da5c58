package offer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Detail is one pricing package of an offer. Exactly one detail exists per
// tier; details are created with their offer and mutated by tier afterwards.
type Detail struct {
	id           uuid.UUID
	title        Title
	tier         Tier
	revisions    Revisions
	deliveryTime DeliveryTime
	price        Price
	features     Features
}

func NewDetail(titleText string, tier Tier, revisionCount int, deliveryDays int, price decimal.Decimal, featureLabels []string) (*Detail, error) {
	title, err := NewTitle(titleText)
	if err != nil {
		return nil, err
	}
	if !tier.IsValid() {
		return nil, ErrUnknownTier
	}
	revisions, err := NewRevisions(revisionCount)
	if err != nil {
		return nil, err
	}
	deliveryTime, err := NewDeliveryTime(deliveryDays)
	if err != nil {
		return nil, err
	}
	priceVO, err := NewPrice(price)
	if err != nil {
		return nil, err
	}
	features, err := NewFeatures(featureLabels)
	if err != nil {
		return nil, err
	}

	return &Detail{
		id:           uuid.New(),
		title:        title,
		tier:         tier,
		revisions:    revisions,
		deliveryTime: deliveryTime,
		price:        priceVO,
		features:     features,
	}, nil
}

func (d *Detail) ID() uuid.UUID              { return d.id }
func (d *Detail) Title() Title               { return d.title }
func (d *Detail) Tier() Tier                 { return d.tier }
func (d *Detail) Revisions() Revisions       { return d.revisions }
func (d *Detail) DeliveryTime() DeliveryTime { return d.deliveryTime }
func (d *Detail) Price() Price               { return d.price }
func (d *Detail) Features() Features         { return d.features }

// Offer aggregates three tiered packages owned by one business user.
// The owner is fixed at creation time.
type Offer struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	title       Title
	description string
	image       *string
	details     map[Tier]*Detail
	createdAt   time.Time
	updatedAt   time.Time
}

// NewOffer enforces the three-tier invariant: exactly one package per tier
// in {basic, standard, premium}.
func NewOffer(ownerID uuid.UUID, titleText, description string, image *string, details []*Detail) (*Offer, error) {
	title, err := NewTitle(titleText)
	if err != nil {
		return nil, err
	}

	if len(details) != len(AllTiers) {
		return nil, ErrDetailCount
	}
	byTier := make(map[Tier]*Detail, len(details))
	for _, d := range details {
		if _, dup := byTier[d.tier]; dup {
			return nil, ErrDuplicateTier
		}
		byTier[d.tier] = d
	}
	for _, t := range AllTiers {
		if _, ok := byTier[t]; !ok {
			return nil, ErrDetailCount
		}
	}

	return &Offer{
		id:          uuid.New(),
		ownerID:     ownerID,
		title:       title,
		description: description,
		image:       image,
		details:     byTier,
	}, nil
}

func (o *Offer) ID() uuid.UUID        { return o.id }
func (o *Offer) OwnerID() uuid.UUID   { return o.ownerID }
func (o *Offer) Title() Title         { return o.title }
func (o *Offer) Description() string  { return o.description }
func (o *Offer) Image() *string       { return o.image }
func (o *Offer) CreatedAt() time.Time { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time { return o.updatedAt }

// Details returns the packages in canonical tier order.
func (o *Offer) Details() []*Detail {
	out := make([]*Detail, 0, len(AllTiers))
	for _, t := range AllTiers {
		if d, ok := o.details[t]; ok {
			out = append(out, d)
		}
	}
	return out
}

func (o *Offer) Detail(tier Tier) (*Detail, bool) {
	d, ok := o.details[tier]
	return d, ok
}

// MinPrice returns the cheapest package price, or nil when no package
// carries one. Absence is nil, never zero.
func (o *Offer) MinPrice() *decimal.Decimal {
	var min *decimal.Decimal
	for _, d := range o.details {
		p := d.price.Decimal()
		if min == nil || p.LessThan(*min) {
			v := p
			min = &v
		}
	}
	return min
}

// MinDeliveryTime returns the fastest delivery across packages in days,
// or nil when no package carries one.
func (o *Offer) MinDeliveryTime() *int {
	var min *int
	for _, d := range o.details {
		days := d.deliveryTime.Days()
		if min == nil || days < *min {
			v := days
			min = &v
		}
	}
	return min
}
