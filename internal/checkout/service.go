package checkout

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/timberhaus/sawmill-backend/internal/cart"
	"github.com/timberhaus/sawmill-backend/internal/order"
	"github.com/timberhaus/sawmill-backend/internal/promotion"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError lists what is wrong with the order form.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Service drives the checkout wizard: one session per user, three steps,
// and a single order submission at the end.
type Service struct {
	store  *Store
	carts  cart.ServiceInterface
	users  user.ServiceInterface
	orders order.Creator
	promos promotion.Discounter
}

func NewService(store *Store, carts cart.ServiceInterface, users user.ServiceInterface, orders order.Creator, promos promotion.Discounter) *Service {
	return &Service{store: store, carts: carts, users: users, orders: orders, promos: promos}
}

// Start opens a checkout session for the user's current cart. An empty cart
// cannot enter checkout. Starting again while a session is live returns
// that session unchanged; a confirmed session is replaced by a fresh one.
func (s *Service) Start(userID int) (Session, error) {
	items, err := s.carts.GetCart(userID)
	if err != nil {
		return Session{}, err
	}
	if len(items) == 0 {
		return Session{}, ErrEmptyCart
	}

	if existing, err := s.store.Get(userID); err == nil && !existing.Step.IsTerminal() {
		return existing, nil
	}

	details := Details{DeliveryMethod: MethodPickup}
	if s.users != nil {
		if u, err := s.users.GetByID(userID); err == nil {
			details.CustomerName = u.FullName()
			details.CustomerEmail = u.Email
			details.PhoneNumber = u.Phone
		}
	}

	now := nowStamp()
	sess := Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Step:      StepReview,
		Details:   details,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.store.Put(sess)
	return sess, nil
}

// Get returns the user's live session.
func (s *Service) Get(userID int) (Session, error) {
	return s.store.Get(userID)
}

// Advance moves the session one step forward. Leaving the details step
// requires a complete order form; the confirmation step only moves on
// through Confirm.
func (s *Service) Advance(userID int) (Session, error) {
	return s.store.Update(userID, nowStamp(), func(sess *Session) error {
		next, ok := sess.Step.next()
		if !ok {
			return ErrInvalidStep
		}
		if sess.Step == StepDetails {
			if problems := sess.Details.validate(); len(problems) > 0 {
				return &ValidationError{Problems: problems}
			}
		}
		sess.Step = next
		return nil
	})
}

// Back moves the session one step toward the cart. Entered details are kept.
func (s *Service) Back(userID int) (Session, error) {
	return s.store.Update(userID, nowStamp(), func(sess *Session) error {
		prev, ok := sess.Step.prev()
		if !ok {
			return ErrInvalidStep
		}
		sess.Step = prev
		return nil
	})
}

// UpdateDetails replaces the order form. Only the details step accepts the
// form, and an incomplete form is rejected outright.
func (s *Service) UpdateDetails(userID int, details Details) (Session, error) {
	if problems := details.validate(); len(problems) > 0 {
		return Session{}, &ValidationError{Problems: problems}
	}
	if details.DeliveryMethod == MethodPickup {
		details.Delivery = nil
	}
	return s.store.Update(userID, nowStamp(), func(sess *Session) error {
		if sess.Step != StepDetails {
			return ErrInvalidStep
		}
		sess.Details = details
		return nil
	})
}

// Confirm submits the order. The store latch guarantees a session produces
// at most one order no matter how many confirms race; a failed submission
// releases the latch and leaves the cart and session untouched for retry.
func (s *Service) Confirm(userID int) (Session, error) {
	sess, err := s.store.BeginSubmit(userID)
	if err != nil {
		return Session{}, err
	}

	created, err := s.placeOrder(sess)
	if err != nil {
		s.store.FailSubmit(userID)
		return Session{}, err
	}

	// the order exists either way, so these failures must not undo the confirm
	if err := s.carts.ClearCart(userID); err != nil {
		log.Printf("checkout: order %d placed but cart for user %d not cleared: %v", created.OrderID, userID, err)
	}
	if s.users != nil {
		if _, err := s.users.AppendOrderID(userID, created.OrderID); err != nil {
			log.Printf("checkout: order %d placed but not recorded on user %d: %v", created.OrderID, userID, err)
		}
	}

	return s.store.CompleteSubmit(userID, created.OrderID, nowStamp())
}

func (s *Service) placeOrder(sess Session) (order.Order, error) {
	items, err := s.carts.GetCart(sess.UserID)
	if err != nil {
		return order.Order{}, err
	}
	if len(items) == 0 {
		return order.Order{}, ErrEmptyCart
	}

	orderItems := make([]order.Item, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, order.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	subtotal := cart.Subtotal(items)
	discount := decimal.Zero
	if s.promos != nil {
		discount = s.promos.BestDiscount(subtotal)
	}

	ord := order.Order{
		UserID:              sess.UserID,
		Items:               orderItems,
		Subtotal:            subtotal,
		Discount:            discount,
		Total:               subtotal.Sub(discount),
		CustomerName:        sess.Details.CustomerName,
		CustomerEmail:       sess.Details.CustomerEmail,
		PhoneNumber:         sess.Details.PhoneNumber,
		DeliveryMethod:      sess.Details.DeliveryMethod,
		ShippingAddress:     sess.Details.resolvedAddress(order.PickupAddress),
		SpecialInstructions: sess.Details.SpecialInstructions,
	}
	return s.orders.Create(ord)
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
