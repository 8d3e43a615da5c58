//go:build unit

package review_test

import (
	"strings"
	"testing"

	"marketplace-api/internal/domain/review"
	"marketplace-api/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReviewBuilder)
	errIs  error
}

func TestReview(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.Equal(t, "Excellent service!", actual.Description().String())
	})

	t.Run("rating validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "below minimum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(0) },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "minimum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(1) },
			},
			{
				name:   "maximum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(5) },
			},
			{
				name:   "above maximum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(6) },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "negative rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(-1) },
				errIs:  review.ErrInvalidRating,
			},
		})
	})

	t.Run("description validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "minimum length description",
				mutate: func(b *builder.ReviewBuilder) { b.WithDescription("a") },
			},
			{
				name: "maximum length description",
				mutate: func(b *builder.ReviewBuilder) {
					b.WithDescription(strings.Repeat("a", review.MaxDescriptionLength))
				},
			},
			{
				name:   "empty description",
				mutate: func(b *builder.ReviewBuilder) { b.WithDescription("") },
				errIs:  review.ErrEmptyDescription,
			},
			{
				name:   "whitespace only description",
				mutate: func(b *builder.ReviewBuilder) { b.WithDescription("   ") },
				errIs:  review.ErrEmptyDescription,
			},
			{
				name: "description exceeds maximum length",
				mutate: func(b *builder.ReviewBuilder) {
					b.WithDescription(strings.Repeat("a", review.MaxDescriptionLength+1))
				},
				errIs: review.ErrDescriptionTooLong,
			},
		})
	})

	t.Run("description trimming", func(t *testing.T) {
		actual, err := review.NewReview(uuid.New(), uuid.New(), 4, "  Trimmed description  ")
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, "Trimmed description", actual.Description().String())
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		businessID := uuid.New()
		reviewerID := uuid.New()

		review1, err1 := review.NewReview(businessID, reviewerID, 5, "Great!")
		review2, err2 := review.NewReview(businessID, reviewerID, 5, "Great!")

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, review1.ID(), review2.ID())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewReviewBuilder().With(c.mutate).BuildDomain()

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
