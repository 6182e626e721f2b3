package router

import "encoding/json"

// Tier is a cost/latency/quality class a prompt is routed to. Comparisons and
// table lookups go through this type, never free-form strings.
type Tier int

const (
	TierReflex Tier = iota
	TierStandard
	TierDeep
)

var tierNames = [...]string{"reflex", "standard", "deep"}

func (t Tier) String() string {
	if int(t) < len(tierNames) {
		return tierNames[t]
	}
	return "unknown"
}

// Tiers lists all tiers in ascending cost order.
func Tiers() []Tier {
	return []Tier{TierReflex, TierStandard, TierDeep}
}

// MarshalJSON implements json.Marshaler.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON implements json.Unmarshaler. Unknown values decode to
// TierStandard, the safe default.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "reflex":
		*t = TierReflex
	case "deep":
		*t = TierDeep
	default:
		*t = TierStandard
	}
	return nil
}
