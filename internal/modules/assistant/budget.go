// README: Budget reconciler: proportional scaling to keep breakdowns within budget.
package assistant

import (
	"math"

	"globetrotter/internal/types"
)

// Reconcile enforces that a breakdown never exceeds the requested budget.
// Within budget, or with no budget requested, the breakdown passes through
// unchanged. Otherwise every category is scaled by the same factor so the
// relative spend distribution is preserved, and the total is pinned to the
// requested amount. Pure and deterministic.
func Reconcile(b BudgetBreakdown, requested types.Money) BudgetBreakdown {
	if b.Currency == "" {
		b.Currency = requested.Currency
	}
	if requested.IsZero() || b.Total <= requested.Amount {
		return b
	}
	// b.Total > requested.Amount > 0 here, so the divisor is never zero.
	scale := float64(requested.Amount) / float64(b.Total)

	b.Flights = scaleAmount(b.Flights, scale)
	b.Hotels = scaleAmount(b.Hotels, scale)
	b.Activities = scaleAmount(b.Activities, scale)
	b.Total = requested.Amount
	return b
}

func scaleAmount(v int64, scale float64) int64 {
	return int64(math.Round(float64(v) * scale))
}
