package response

import (
	"marketplace-api/internal/usecase/queries"

	"github.com/google/uuid"
)

// OfferListResponse is the paginated envelope of an offer listing.
type OfferListResponse struct {
	Count   int64                    `json:"count"`
	Results []*queries.OfferListItem `json:"results"`
}

func NewOfferListResponse(items []*queries.OfferListItem, total int64) *OfferListResponse {
	if items == nil {
		items = []*queries.OfferListItem{}
	}
	return &OfferListResponse{
		Count:   total,
		Results: items,
	}
}

type CreateOfferResponse struct {
	ID uuid.UUID `json:"id"`
}
