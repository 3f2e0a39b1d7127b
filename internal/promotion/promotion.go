package promotion

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion kinds: a percentage off the cart subtotal or a fixed amount.
const (
	KindPercent = "percent"
	KindAmount  = "amount"
)

// Promotion is a storefront-wide discount with an active window.
type Promotion struct {
	PromoID   int             `json:"promoId"`
	Name      string          `json:"name"`
	Kind      string          `json:"kind"`
	Value     decimal.Decimal `json:"value"`
	StartsAt  string          `json:"startsAt,omitempty"`
	EndsAt    string          `json:"endsAt,omitempty"`
	Active    bool            `json:"active"`
	CreatedAt string          `json:"createdAt,omitempty"`
}

// ActiveAt reports whether the promotion applies at the given instant.
// Missing window bounds are open-ended.
func (p Promotion) ActiveAt(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartsAt != "" {
		if start, err := time.Parse(time.RFC3339, p.StartsAt); err != nil || now.Before(start) {
			return false
		}
	}
	if p.EndsAt != "" {
		if end, err := time.Parse(time.RFC3339, p.EndsAt); err != nil || now.After(end) {
			return false
		}
	}
	return true
}

// Discount returns the amount this promotion takes off the given subtotal.
// The result is clamped so a discount can never exceed the subtotal.
func (p Promotion) Discount(subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch p.Kind {
	case KindPercent:
		discount = subtotal.Mul(p.Value).Div(decimal.NewFromInt(100))
	case KindAmount:
		discount = p.Value
	default:
		return decimal.Zero
	}

	if discount.IsNegative() {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
