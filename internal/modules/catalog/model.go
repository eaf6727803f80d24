// README: Catalog domain models (cities and activities).
package catalog

// City is a resolved catalog city.
type City struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Activity is a catalog entry for things to do in a city.
type Activity struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	PriceRange    string  `json:"price_range"`
	DurationHours float64 `json:"duration_hours"`
}
