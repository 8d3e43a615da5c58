//go:build unit || e2e

package builder

import (
	"time"

	domorder "marketplace-api/internal/domain/order"
	reqdto "marketplace-api/internal/handler/dto/request"
	"marketplace-api/internal/usecase/queries"
	"marketplace-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderBuilder struct {
	CustomerUserID     uuid.UUID
	BusinessUserID     uuid.UUID
	OfferDetailID      uuid.UUID
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              decimal.Decimal
	OfferType          string
	Features           []string
	Status             string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Now()
	return &OrderBuilder{
		CustomerUserID:     uuid.New(),
		BusinessUserID:     uuid.New(),
		OfferDetailID:      uuid.New(),
		Title:              "Standard Design",
		Revisions:          5,
		DeliveryTimeInDays: 7,
		Price:              decimal.NewFromInt(120),
		OfferType:          "standard",
		Features:           []string{"Logo Design", "Visitenkarten"},
		Status:             "in_progress",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (o *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(o)
	return o
}

// Build methods
func (o *OrderBuilder) BuildSourcePackage() domorder.SourcePackage {
	return domorder.SourcePackage{
		DetailID:           o.OfferDetailID,
		OfferOwnerID:       o.BusinessUserID,
		Title:              o.Title,
		Revisions:          o.Revisions,
		DeliveryTimeInDays: o.DeliveryTimeInDays,
		Price:              o.Price,
		OfferType:          o.OfferType,
		Features:           o.Features,
	}
}

func (o *OrderBuilder) BuildDomain() *domorder.Order {
	return domorder.NewOrder(o.CustomerUserID, o.BuildSourcePackage())
}

func (o *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	return reqdto.CreateOrderRequest{OfferDetailID: o.OfferDetailID}
}

func (o *OrderBuilder) BuildView() *queries.OrderView {
	return &queries.OrderView{
		ID:                 uuid.New(),
		CustomerUserID:     o.CustomerUserID,
		BusinessUserID:     o.BusinessUserID,
		Title:              o.Title,
		Revisions:          o.Revisions,
		DeliveryTimeInDays: o.DeliveryTimeInDays,
		Price:              o.Price,
		Features:           o.Features,
		OfferType:          o.OfferType,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func (o *OrderBuilder) BuildSnapshot() *shared.OrderSnapshot {
	return &shared.OrderSnapshot{
		ID:             uuid.New(),
		CustomerUserID: o.CustomerUserID,
		BusinessUserID: o.BusinessUserID,
		Status:         o.Status,
	}
}

// Fluent builder methods
func (o *OrderBuilder) WithCustomerUserID(id uuid.UUID) *OrderBuilder {
	o.CustomerUserID = id
	return o
}

func (o *OrderBuilder) WithBusinessUserID(id uuid.UUID) *OrderBuilder {
	o.BusinessUserID = id
	return o
}

func (o *OrderBuilder) WithStatus(status string) *OrderBuilder {
	o.Status = status
	return o
}

func (o *OrderBuilder) WithFeatures(features []string) *OrderBuilder {
	o.Features = features
	return o
}
