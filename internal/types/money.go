// README: Common money value object used across modules.
package types

import "math"

// Money is an amount in whole currency units. Budgets are parsed and
// reconciled at integer precision; provider wire formats keep their own
// float fields and convert at the boundary.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// IsZero reports whether no amount was set. A zero budget is treated the
// same as an absent one everywhere in the pipeline.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Scaled returns the amount multiplied by factor, rounded to the nearest
// whole unit.
func (m Money) Scaled(factor float64) Money {
	return Money{
		Amount:   int64(math.Round(float64(m.Amount) * factor)),
		Currency: m.Currency,
	}
}
