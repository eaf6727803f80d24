package assistant

import (
	"testing"

	"globetrotter/internal/types"
)

func TestReconcileWithinBudgetUnchanged(t *testing.T) {
	in := BudgetBreakdown{Flights: 100, Hotels: 150, Activities: 50, Total: 300, Currency: "USD"}
	out := Reconcile(in, types.Money{Amount: 400, Currency: "USD"})
	if out != in {
		t.Fatalf("breakdown changed despite being within budget: %+v", out)
	}
}

func TestReconcileNoBudgetPassesThrough(t *testing.T) {
	in := BudgetBreakdown{Flights: 900, Hotels: 600, Activities: 0, Total: 1500, Currency: "EUR"}
	out := Reconcile(in, types.Money{})
	if out != in {
		t.Fatalf("breakdown changed despite zero requested budget: %+v", out)
	}
}

func TestReconcileScalesProportionally(t *testing.T) {
	in := BudgetBreakdown{Flights: 600, Hotels: 300, Activities: 100, Total: 1000, Currency: "USD"}
	out := Reconcile(in, types.Money{Amount: 500, Currency: "USD"})

	if out.Total != 500 {
		t.Fatalf("total = %d, want 500", out.Total)
	}
	if out.Flights != 300 || out.Hotels != 150 || out.Activities != 50 {
		t.Fatalf("categories = %d/%d/%d, want 300/150/50", out.Flights, out.Hotels, out.Activities)
	}
}

func TestReconcileNeverExceedsBudget(t *testing.T) {
	cases := []struct {
		name      string
		in        BudgetBreakdown
		requested int64
	}{
		{"slightly over", BudgetBreakdown{Flights: 210, Hotels: 180, Activities: 20, Total: 410, Currency: "USD"}, 400},
		{"far over", BudgetBreakdown{Flights: 3000, Hotels: 2500, Activities: 900, Total: 6400, Currency: "USD"}, 500},
		{"rounding heavy", BudgetBreakdown{Flights: 333, Hotels: 333, Activities: 333, Total: 999, Currency: "USD"}, 100},
		{"single category", BudgetBreakdown{Hotels: 720, Total: 720, Currency: "USD"}, 300},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Reconcile(tc.in, types.Money{Amount: tc.requested, Currency: "USD"})
			if out.Total > tc.requested {
				t.Fatalf("total %d exceeds requested %d", out.Total, tc.requested)
			}
			// Each category should land within a rounding unit of the
			// exact proportional share.
			scale := float64(tc.requested) / float64(tc.in.Total)
			check := func(name string, got, orig int64) {
				want := float64(orig) * scale
				if diff := float64(got) - want; diff > 1 || diff < -1 {
					t.Errorf("%s = %d, want ~%.1f", name, got, want)
				}
			}
			check("flights", out.Flights, tc.in.Flights)
			check("hotels", out.Hotels, tc.in.Hotels)
			check("activities", out.Activities, tc.in.Activities)
		})
	}
}

func TestReconcileBackfillsCurrency(t *testing.T) {
	cases := []struct {
		name string
		in   BudgetBreakdown
	}{
		{"over budget", BudgetBreakdown{Flights: 500, Hotels: 500, Total: 1000}},
		{"within budget", BudgetBreakdown{Flights: 100, Hotels: 100, Total: 200}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Reconcile(tc.in, types.Money{Amount: 400, Currency: "GBP"})
			if out.Currency != "GBP" {
				t.Fatalf("currency = %q, want GBP", out.Currency)
			}
		})
	}
}
