//go:build unit

package pgconv_test

import (
	"testing"

	"marketplace-api/internal/pkg/pgconv"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalNumericConversion(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{name: "two decimal places", value: "12.50"},
		{name: "integer amount", value: "40"},
		{name: "sub unit amount", value: "0.01"},
		{name: "large amount", value: "99999999.99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tc.value)
			require.NoError(t, err)

			n := pgconv.NumericFromDecimal(d)
			require.True(t, n.Valid)

			back := pgconv.DecimalFromNumeric(n)
			assert.True(t, d.Equal(back), "expected %s, got %s", d, back)
		})
	}
}

func TestDecimalPtrFromNumericNull(t *testing.T) {
	got := pgconv.DecimalPtrFromNumeric(pgconv.NumericFromDecimalPtr(nil))
	assert.Nil(t, got)
}
