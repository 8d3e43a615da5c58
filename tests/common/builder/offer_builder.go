//go:build unit || e2e

package builder

import (
	"time"

	domoffer "marketplace-api/internal/domain/offer"
	"marketplace-api/internal/usecase/commands"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OfferDetailBuilder struct {
	Title              string
	OfferType          string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	Features           []string
}

type OfferBuilder struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Image       *string
	Details     []OfferDetailBuilder
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewOfferBuilder() *OfferBuilder {
	now := time.Now()
	return &OfferBuilder{
		OwnerID:     uuid.New(),
		Title:       "Logo Design",
		Description: "Professional logo design",
		Details: []OfferDetailBuilder{
			{
				Title:              "Basic Design",
				OfferType:          "basic",
				Revisions:          2,
				DeliveryTimeInDays: 5,
				Price:              decimal.NewFromInt(50),
				Features:           []string{"Logo Design"},
			},
			{
				Title:              "Standard Design",
				OfferType:          "standard",
				Revisions:          5,
				DeliveryTimeInDays: 7,
				Price:              decimal.NewFromInt(120),
				Features:           []string{"Logo Design", "Visitenkarten"},
			},
			{
				Title:              "Premium Design",
				OfferType:          "premium",
				Revisions:          10,
				DeliveryTimeInDays: 10,
				Price:              decimal.NewFromInt(250),
				Features:           []string{"Logo Design", "Visitenkarten", "Briefpapier"},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (o *OfferBuilder) With(mutate func(*OfferBuilder)) *OfferBuilder {
	mutate(o)
	return o
}

// Build methods
func (o *OfferBuilder) BuildDomain() (*domoffer.Offer, error) {
	details := make([]*domoffer.Detail, 0, len(o.Details))
	for _, d := range o.Details {
		tier := domoffer.Tier(d.OfferType)
		detail, err := domoffer.NewDetail(d.Title, tier, d.Revisions, d.DeliveryTimeInDays, d.Price, d.Features)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return domoffer.NewOffer(o.OwnerID, o.Title, o.Description, o.Image, details)
}

func (o *OfferBuilder) BuildCreateCommand() commands.CreateOfferRequest {
	details := make([]commands.CreateOfferDetail, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, commands.CreateOfferDetail{
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           d.Features,
			OfferType:          d.OfferType,
		})
	}
	return commands.CreateOfferRequest{
		Title:       o.Title,
		Image:       o.Image,
		Description: o.Description,
		Details:     details,
	}
}

// BuildCreateRequestBody returns the JSON shape of a create request. The
// request DTO keeps numerics as raw text, so tests build the body as a map.
func (o *OfferBuilder) BuildCreateRequestBody() map[string]any {
	details := make([]map[string]any, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, map[string]any{
			"title":                 d.Title,
			"revisions":             d.Revisions,
			"delivery_time_in_days": d.DeliveryTimeInDays,
			"price":                 d.Price.String(),
			"features":              d.Features,
			"offer_type":            d.OfferType,
		})
	}
	body := map[string]any{
		"title":       o.Title,
		"description": o.Description,
		"details":     details,
	}
	if o.Image != nil {
		body["image"] = *o.Image
	}
	return body
}

func (o *OfferBuilder) BuildView() *queries.OfferView {
	minPrice, minDelivery := o.minAggregates()
	return &queries.OfferView{
		ID:              uuid.New(),
		UserID:          o.OwnerID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         o.buildDetailRefs(),
		MinPrice:        minPrice,
		MinDeliveryTime: minDelivery,
	}
}

func (o *OfferBuilder) BuildListItem() *queries.OfferListItem {
	minPrice, minDelivery := o.minAggregates()
	return &queries.OfferListItem{
		ID:              uuid.New(),
		UserID:          o.OwnerID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         o.buildDetailRefs(),
		MinPrice:        minPrice,
		MinDeliveryTime: minDelivery,
		UserDetails: queries.CreatorSummary{
			FirstName: "Max",
			LastName:  "Mustermann",
			Username:  "maxdesign",
		},
	}
}

func (o *OfferBuilder) BuildDetailView(index int) *queries.DetailView {
	d := o.Details[index]
	return &queries.DetailView{
		ID:                 uuid.New(),
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		Features:           d.Features,
		OfferType:          d.OfferType,
	}
}

func (o *OfferBuilder) BuildDetailSnapshot(index int) *shared.DetailSnapshot {
	d := o.Details[index]
	return &shared.DetailSnapshot{
		ID:                 uuid.New(),
		OfferID:            uuid.New(),
		OfferOwnerID:       o.OwnerID,
		Title:              d.Title,
		Revisions:          d.Revisions,
		DeliveryTimeInDays: d.DeliveryTimeInDays,
		Price:              d.Price,
		OfferType:          d.OfferType,
		Features:           d.Features,
	}
}

func (o *OfferBuilder) buildDetailRefs() []queries.DetailRef {
	refs := make([]queries.DetailRef, 0, len(o.Details))
	for range o.Details {
		id := uuid.New()
		refs = append(refs, queries.DetailRef{ID: id, URL: "/api/offerdetails/" + id.String() + "/"})
	}
	return refs
}

func (o *OfferBuilder) minAggregates() (*decimal.Decimal, *int) {
	var minPrice *decimal.Decimal
	var minDelivery *int
	for _, d := range o.Details {
		p := d.Price
		if minPrice == nil || p.LessThan(*minPrice) {
			minPrice = &p
		}
		days := d.DeliveryTimeInDays
		if minDelivery == nil || days < *minDelivery {
			minDelivery = &days
		}
	}
	return minPrice, minDelivery
}

// Fluent builder methods
func (o *OfferBuilder) WithOwnerID(id uuid.UUID) *OfferBuilder {
	o.OwnerID = id
	return o
}

func (o *OfferBuilder) WithTitle(title string) *OfferBuilder {
	o.Title = title
	return o
}

func (o *OfferBuilder) WithDetailCount(n int) *OfferBuilder {
	if n < len(o.Details) {
		o.Details = o.Details[:n]
	}
	return o
}

func (o *OfferBuilder) WithTier(index int, offerType string) *OfferBuilder {
	o.Details[index].OfferType = offerType
	return o
}

func (o *OfferBuilder) WithPrice(index int, price decimal.Decimal) *OfferBuilder {
	o.Details[index].Price = price
	return o
}

func (o *OfferBuilder) WithDeliveryTime(index int, days int) *OfferBuilder {
	o.Details[index].DeliveryTimeInDays = days
	return o
}
