// README: Hotel cost estimate domain models.
package hotels

// Estimate is a lodging cost estimate for a stay.
type Estimate struct {
	Provider        string  `json:"provider"`
	NightlyEstimate float64 `json:"nightlyEstimate"`
	TotalEstimate   float64 `json:"totalEstimate"`
	Currency        string  `json:"currency"`
	Basis           string  `json:"basis"`
}

// heuristicNightlyRate is the conservative flat rate used when the provider
// is unavailable. Whole currency units per night.
const heuristicNightlyRate = 120

// HeuristicEstimate is the deterministic fallback when the provider fails:
// a flat nightly rate times the number of nights.
func HeuristicEstimate(nights int, currency string) Estimate {
	if nights < 1 {
		nights = 1
	}
	return Estimate{
		Provider:        "heuristic",
		NightlyEstimate: heuristicNightlyRate,
		TotalEstimate:   float64(heuristicNightlyRate * nights),
		Currency:        currency,
		Basis:           "flat nightly rate",
	}
}
