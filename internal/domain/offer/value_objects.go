package offer

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyTitle          = errors.New("title cannot be empty")
	ErrTitleTooLong        = errors.New("title exceeds maximum length")
	ErrUnknownTier         = errors.New("unknown offer tier")
	ErrDetailCount         = errors.New("an offer requires exactly three packages")
	ErrDuplicateTier       = errors.New("duplicate package tier")
	ErrInvalidPrice        = errors.New("price must be greater than zero")
	ErrInvalidDeliveryTime = errors.New("delivery time must be at least one day")
	ErrInvalidRevisions    = errors.New("revisions must be non-negative or unlimited")
	ErrEmptyFeature        = errors.New("feature label cannot be empty")
)

const (
	MaxTitleLength = 255

	// UnlimitedRevisions is the sentinel for packages without a revision cap.
	UnlimitedRevisions = -1
)

type Title struct {
	value string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, ErrEmptyTitle
	}
	if len(t) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{value: t}, nil
}

func (t Title) String() string { return t.value }

type Price struct {
	value decimal.Decimal
}

func NewPrice(d decimal.Decimal) (Price, error) {
	if !d.IsPositive() {
		return Price{}, ErrInvalidPrice
	}
	return Price{value: d}, nil
}

func (p Price) Decimal() decimal.Decimal { return p.value }

type DeliveryTime struct {
	days int
}

func NewDeliveryTime(days int) (DeliveryTime, error) {
	if days < 1 {
		return DeliveryTime{}, ErrInvalidDeliveryTime
	}
	return DeliveryTime{days: days}, nil
}

func (d DeliveryTime) Days() int { return d.days }

type Revisions struct {
	count int
}

func NewRevisions(count int) (Revisions, error) {
	if count < UnlimitedRevisions {
		return Revisions{}, ErrInvalidRevisions
	}
	return Revisions{count: count}, nil
}

func (r Revisions) Count() int        { return r.count }
func (r Revisions) IsUnlimited() bool { return r.count == UnlimitedRevisions }

// Features is an ordered list of free-text labels. Order is preserved for
// display; labels are deduplicated by name at the store layer.
type Features []string

func NewFeatures(labels []string) (Features, error) {
	out := make(Features, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, ErrEmptyFeature
		}
		out = append(out, l)
	}
	return out, nil
}
