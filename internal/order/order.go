package order

import (
	"github.com/shopspring/decimal"
	"github.com/timberhaus/sawmill-backend/internal/product"
)

// Order statuses. Completed and cancelled are terminal.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// PickupAddress is the shipping address marker stored for pickup orders.
const PickupAddress = "Pickup"

// Item is one order line, frozen from the cart at submission time.
type Item struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// Order represents a purchase created from a completed checkout. It is
// immutable from the customer's point of view; only the status moves.
type Order struct {
	OrderID             int             `json:"orderId"`
	UserID              int             `json:"userId"`
	Items               []Item          `json:"items"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	Discount            decimal.Decimal `json:"discount"`
	Total               decimal.Decimal `json:"total"`
	CustomerName        string          `json:"customerName"`
	CustomerEmail       string          `json:"customerEmail"`
	PhoneNumber         string          `json:"phoneNumber"`
	DeliveryMethod      string          `json:"deliveryMethod"`
	ShippingAddress     string          `json:"shippingAddress"`
	SpecialInstructions string          `json:"specialInstructions,omitempty"`
	Status              string          `json:"status"`
	CreatedAt           string          `json:"createdAt"`
	UpdatedAt           string          `json:"updatedAt"`

	// Products carries catalog details for the line items when the handler
	// enriches a response; it is never persisted.
	Products map[string]product.Summary `json:"products,omitempty"`
}

func isTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// allowedTransitions maps a status to the statuses an admin may move it to.
var allowedTransitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted},
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
