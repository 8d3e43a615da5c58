package request

import (
	"fmt"

	"marketplace-api/internal/usecase/commands"
)

type OfferDetailRequest struct {
	Title              string          `json:"title" binding:"required"`
	Revisions          FlexibleInt     `json:"revisions"`
	DeliveryTimeInDays FlexibleInt     `json:"delivery_time_in_days"`
	Price              FlexibleDecimal `json:"price"`
	Features           []string        `json:"features" binding:"required"`
	OfferType          string          `json:"offer_type" binding:"required"`
}

type CreateOfferRequest struct {
	Title       string               `json:"title" binding:"required"`
	Image       *string              `json:"image"`
	Description string               `json:"description"`
	Details     []OfferDetailRequest `json:"details" binding:"required"`
}

func (r *CreateOfferRequest) ToCommand() (commands.CreateOfferRequest, error) {
	details := make([]commands.CreateOfferDetail, 0, len(r.Details))
	for i, d := range r.Details {
		prefix := fmt.Sprintf("details[%d].", i)

		revisions, err := d.Revisions.Int(prefix + "revisions")
		if err != nil {
			return commands.CreateOfferRequest{}, err
		}
		deliveryTime, err := d.DeliveryTimeInDays.Int(prefix + "delivery_time_in_days")
		if err != nil {
			return commands.CreateOfferRequest{}, err
		}
		price, err := d.Price.Decimal(prefix + "price")
		if err != nil {
			return commands.CreateOfferRequest{}, err
		}

		details = append(details, commands.CreateOfferDetail{
			Title:              d.Title,
			Revisions:          revisions,
			DeliveryTimeInDays: deliveryTime,
			Price:              price,
			Features:           d.Features,
			OfferType:          d.OfferType,
		})
	}

	return commands.CreateOfferRequest{
		Title:       r.Title,
		Image:       r.Image,
		Description: r.Description,
		Details:     details,
	}, nil
}

type UpdateOfferDetailRequest struct {
	OfferType          string          `json:"offer_type" binding:"required"`
	Title              *string         `json:"title"`
	Revisions          FlexibleInt     `json:"revisions"`
	DeliveryTimeInDays FlexibleInt     `json:"delivery_time_in_days"`
	Price              FlexibleDecimal `json:"price"`
	Features           []string        `json:"features"`
}

type UpdateOfferRequest struct {
	Title       *string                    `json:"title"`
	Description *string                    `json:"description"`
	Image       *string                    `json:"image"`
	Details     []UpdateOfferDetailRequest `json:"details"`
}

func (r *UpdateOfferRequest) ToCommand() (commands.UpdateOfferRequest, error) {
	details := make([]commands.UpdateOfferDetail, 0, len(r.Details))
	for i, d := range r.Details {
		prefix := fmt.Sprintf("details[%d].", i)

		revisions, err := d.Revisions.IntPtr(prefix + "revisions")
		if err != nil {
			return commands.UpdateOfferRequest{}, err
		}
		deliveryTime, err := d.DeliveryTimeInDays.IntPtr(prefix + "delivery_time_in_days")
		if err != nil {
			return commands.UpdateOfferRequest{}, err
		}
		price, err := d.Price.DecimalPtr(prefix + "price")
		if err != nil {
			return commands.UpdateOfferRequest{}, err
		}

		details = append(details, commands.UpdateOfferDetail{
			OfferType:          d.OfferType,
			Title:              d.Title,
			Revisions:          revisions,
			DeliveryTimeInDays: deliveryTime,
			Price:              price,
			Features:           d.Features,
		})
	}

	return commands.UpdateOfferRequest{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Details:     details,
	}, nil
}
