// README: Flight search domain models.
package flights

import "errors"

var ErrNoFlights = errors.New("flights: no options found")

// Query describes one flight search. Dates use YYYY-MM-DD; zero values mean
// "any". MaxPrice of 0 means uncapped.
type Query struct {
	Origin      string
	Destination string
	DateFrom    string
	DateTo      string
	MaxPrice    float64
	Currency    string
}

// Option is a single bookable flight, as returned by the provider.
type Option struct {
	Airline     string  `json:"airline"`
	FlightNo    string  `json:"flightNo"`
	DepartureAt string  `json:"departureAt"`
	ArrivalAt   string  `json:"arrivalAt"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	Deeplink    string  `json:"deeplink,omitempty"`
}
