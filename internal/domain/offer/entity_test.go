//go:build unit

package offer_test

import (
	"strings"
	"testing"

	"marketplace-api/internal/domain/offer"
	"marketplace-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.OfferBuilder)
	errIs  error
}

func TestOffer(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewOfferBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, "Logo Design", actual.Title().String())
		assert.Len(t, actual.Details(), 3)

		basic, ok := actual.Detail(offer.TierBasic)
		require.True(t, ok)
		assert.Equal(t, "Basic Design", basic.Title().String())
		assert.Equal(t, 2, basic.Revisions().Count())
	})

	t.Run("package count validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "two packages",
				mutate: func(b *builder.OfferBuilder) { b.WithDetailCount(2) },
				errIs:  offer.ErrDetailCount,
			},
			{
				name:   "one package",
				mutate: func(b *builder.OfferBuilder) { b.WithDetailCount(1) },
				errIs:  offer.ErrDetailCount,
			},
			{
				name:   "duplicate tier",
				mutate: func(b *builder.OfferBuilder) { b.WithTier(1, "basic") },
				errIs:  offer.ErrDuplicateTier,
			},
			{
				name:   "unknown tier",
				mutate: func(b *builder.OfferBuilder) { b.WithTier(2, "deluxe") },
				errIs:  offer.ErrUnknownTier,
			},
		})
	})

	t.Run("title validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty title",
				mutate: func(b *builder.OfferBuilder) { b.WithTitle("") },
				errIs:  offer.ErrEmptyTitle,
			},
			{
				name:   "whitespace only title",
				mutate: func(b *builder.OfferBuilder) { b.WithTitle("   ") },
				errIs:  offer.ErrEmptyTitle,
			},
			{
				name:   "maximum length title",
				mutate: func(b *builder.OfferBuilder) { b.WithTitle(strings.Repeat("a", offer.MaxTitleLength)) },
			},
			{
				name:   "title exceeds maximum length",
				mutate: func(b *builder.OfferBuilder) { b.WithTitle(strings.Repeat("a", offer.MaxTitleLength+1)) },
				errIs:  offer.ErrTitleTooLong,
			},
		})
	})

	t.Run("package field validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "zero price",
				mutate: func(b *builder.OfferBuilder) { b.WithPrice(0, decimal.Zero) },
				errIs:  offer.ErrInvalidPrice,
			},
			{
				name:   "negative price",
				mutate: func(b *builder.OfferBuilder) { b.WithPrice(0, decimal.NewFromInt(-10)) },
				errIs:  offer.ErrInvalidPrice,
			},
			{
				name:   "zero delivery time",
				mutate: func(b *builder.OfferBuilder) { b.WithDeliveryTime(0, 0) },
				errIs:  offer.ErrInvalidDeliveryTime,
			},
			{
				name:   "single day delivery",
				mutate: func(b *builder.OfferBuilder) { b.WithDeliveryTime(0, 1) },
			},
			{
				name:   "unlimited revisions",
				mutate: func(b *builder.OfferBuilder) { b.Details[0].Revisions = offer.UnlimitedRevisions },
			},
			{
				name:   "revisions below unlimited sentinel",
				mutate: func(b *builder.OfferBuilder) { b.Details[0].Revisions = -2 },
				errIs:  offer.ErrInvalidRevisions,
			},
			{
				name:   "empty feature label",
				mutate: func(b *builder.OfferBuilder) { b.Details[0].Features = []string{"Logo Design", " "} },
				errIs:  offer.ErrEmptyFeature,
			},
		})
	})

	t.Run("min price picks the cheapest package", func(t *testing.T) {
		o, err := builder.NewOfferBuilder().
			WithPrice(0, decimal.NewFromFloat(99.5)).
			WithPrice(1, decimal.NewFromInt(42)).
			WithPrice(2, decimal.NewFromInt(300)).
			BuildDomain()
		require.NoError(t, err)

		minPrice := o.MinPrice()
		require.NotNil(t, minPrice)
		assert.True(t, minPrice.Equal(decimal.NewFromInt(42)))
	})

	t.Run("min delivery time picks the fastest package", func(t *testing.T) {
		o, err := builder.NewOfferBuilder().
			WithDeliveryTime(0, 14).
			WithDeliveryTime(1, 3).
			WithDeliveryTime(2, 21).
			BuildDomain()
		require.NoError(t, err)

		minDelivery := o.MinDeliveryTime()
		require.NotNil(t, minDelivery)
		assert.Equal(t, 3, *minDelivery)
	})

	t.Run("details returned in canonical tier order", func(t *testing.T) {
		o, err := builder.NewOfferBuilder().BuildDomain()
		require.NoError(t, err)

		details := o.Details()
		require.Len(t, details, 3)
		assert.Equal(t, offer.TierBasic, details[0].Tier())
		assert.Equal(t, offer.TierStandard, details[1].Tier())
		assert.Equal(t, offer.TierPremium, details[2].Tier())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewOfferBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
