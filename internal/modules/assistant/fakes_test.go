package assistant

import (
	"context"
	"errors"
	"strings"

	"globetrotter/internal/ai"
	"globetrotter/internal/modules/catalog"
	"globetrotter/internal/modules/flights"
	"globetrotter/internal/modules/hotels"
)

// fakeLLM scripts model replies per call. fn, when set, takes precedence
// and receives the full conversation so tests can assert on fed-back turns.
type fakeLLM struct {
	fn      func(call int, msgs []ai.Message) (string, error)
	replies []string
	calls   int
}

func (f *fakeLLM) Complete(_ context.Context, msgs []ai.Message, _ float32, _ int) (string, error) {
	f.calls++
	if f.fn != nil {
		return f.fn(f.calls, msgs)
	}
	if len(f.replies) == 0 {
		return "", errors.New("fake llm: no scripted reply")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func (f *fakeLLM) Caption(context.Context, []byte, string) (string, error) {
	return "", errors.New("fake llm: caption unsupported")
}

type fakeCatalog struct {
	cities     []catalog.City
	activities []catalog.Activity
	actErr     error
}

func (f *fakeCatalog) ResolveCity(_ context.Context, query string) (catalog.City, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	for _, c := range f.cities {
		if strings.ToLower(c.Name) == q {
			return c, true
		}
	}
	return catalog.City{}, false
}

func (f *fakeCatalog) FindCityInText(_ context.Context, text string) (catalog.City, bool) {
	lower := strings.ToLower(text)
	var best catalog.City
	found := false
	for _, c := range f.cities {
		if strings.Contains(lower, strings.ToLower(c.Name)) {
			if !found || len(c.Name) > len(best.Name) {
				best = c
				found = true
			}
		}
	}
	return best, found
}

func (f *fakeCatalog) ListActivities(_ context.Context, _ string, limit int) ([]catalog.Activity, error) {
	if f.actErr != nil {
		return nil, f.actErr
	}
	if limit < len(f.activities) {
		return f.activities[:limit], nil
	}
	return f.activities, nil
}

type fakeFlights struct {
	options   []flights.Option
	err       error
	lastQuery flights.Query
	calls     int
}

func (f *fakeFlights) Search(_ context.Context, q flights.Query) ([]flights.Option, error) {
	f.calls++
	f.lastQuery = q
	if f.err != nil {
		return nil, f.err
	}
	return f.options, nil
}

type fakeHotels struct {
	est hotels.Estimate
	err error
}

func (f *fakeHotels) Estimate(_ context.Context, _ string, nights int, currency string) (hotels.Estimate, error) {
	if f.err != nil {
		return hotels.Estimate{}, f.err
	}
	est := f.est
	if est.Currency == "" {
		est.Currency = currency
	}
	return est, nil
}

func defaultCities() []catalog.City {
	return []catalog.City{
		{Name: "Paris", Country: "France"},
		{Name: "Rome", Country: "Italy"},
		{Name: "Tokyo", Country: "Japan"},
		{Name: "London", Country: "United Kingdom"},
	}
}

func newTestService(llm *fakeLLM, cat *fakeCatalog, fl *fakeFlights, ho *fakeHotels) *Service {
	if cat == nil {
		cat = &fakeCatalog{cities: defaultCities()}
	}
	if fl == nil {
		fl = &fakeFlights{err: errors.New("fake flights: unavailable")}
	}
	if ho == nil {
		ho = &fakeHotels{err: errors.New("fake hotels: unavailable")}
	}
	return NewService(llm, cat, fl, ho)
}
