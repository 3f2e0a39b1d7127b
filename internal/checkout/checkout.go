package checkout

import "strings"

// Step identifies where a checkout session sits in the wizard.
type Step string

const (
	StepReview       Step = "review"
	StepDetails      Step = "details"
	StepConfirmation Step = "confirmation"
	StepConfirmed    Step = "confirmed"
)

// IsTerminal reports whether a session can no longer change.
func (s Step) IsTerminal() bool {
	return s == StepConfirmed
}

func (s Step) next() (Step, bool) {
	switch s {
	case StepReview:
		return StepDetails, true
	case StepDetails:
		return StepConfirmation, true
	default:
		return s, false
	}
}

func (s Step) prev() (Step, bool) {
	switch s {
	case StepDetails:
		return StepReview, true
	case StepConfirmation:
		return StepDetails, true
	default:
		return s, false
	}
}

// Delivery methods.
const (
	MethodPickup   = "pickup"
	MethodDelivery = "delivery"
)

// DeliveryDetails carries the shipping fields required when the customer
// chooses courier delivery.
type DeliveryDetails struct {
	ShippingAddress string `json:"shippingAddress"`
	City            string `json:"city"`
	PostalCode      string `json:"postalCode"`
}

// Details is the order form filled in on the details step. Delivery is only
// set when DeliveryMethod is "delivery".
type Details struct {
	CustomerName        string           `json:"customerName"`
	CustomerEmail       string           `json:"customerEmail"`
	PhoneNumber         string           `json:"phoneNumber"`
	DeliveryMethod      string           `json:"deliveryMethod"`
	Delivery            *DeliveryDetails `json:"delivery,omitempty"`
	SpecialInstructions string           `json:"specialInstructions,omitempty"`
}

// validate returns the list of missing or malformed fields, empty when the
// form is complete enough to place an order.
func (d Details) validate() []string {
	var problems []string
	if strings.TrimSpace(d.CustomerName) == "" {
		problems = append(problems, "customerName is required")
	}
	email := strings.TrimSpace(d.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		problems = append(problems, "a valid customerEmail is required")
	}
	if strings.TrimSpace(d.PhoneNumber) == "" {
		problems = append(problems, "phoneNumber is required")
	}

	switch d.DeliveryMethod {
	case MethodPickup:
	case MethodDelivery:
		if d.Delivery == nil {
			problems = append(problems, "delivery details are required for courier delivery")
			break
		}
		if strings.TrimSpace(d.Delivery.ShippingAddress) == "" {
			problems = append(problems, "shippingAddress is required")
		}
		if strings.TrimSpace(d.Delivery.City) == "" {
			problems = append(problems, "city is required")
		}
		if strings.TrimSpace(d.Delivery.PostalCode) == "" {
			problems = append(problems, "postalCode is required")
		}
	default:
		problems = append(problems, "deliveryMethod must be pickup or delivery")
	}

	return problems
}

// resolvedAddress is the single shipping line persisted on the order.
func (d Details) resolvedAddress(pickupMarker string) string {
	if d.DeliveryMethod == MethodDelivery && d.Delivery != nil {
		parts := []string{d.Delivery.ShippingAddress, d.Delivery.City, d.Delivery.PostalCode}
		out := parts[:0]
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				out = append(out, strings.TrimSpace(p))
			}
		}
		return strings.Join(out, ", ")
	}
	return pickupMarker
}
