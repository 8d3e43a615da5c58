package offer

// Tier identifies one of the three pricing packages every offer carries.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// AllTiers is the canonical display order.
var AllTiers = []Tier{TierBasic, TierStandard, TierPremium}

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	switch t {
	case TierBasic, TierStandard, TierPremium:
		return true
	default:
		return false
	}
}

func NewTier(s string) (Tier, error) {
	tier := Tier(s)
	if !tier.IsValid() {
		return "", ErrUnknownTier
	}
	return tier, nil
}
