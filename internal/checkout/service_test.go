package checkout

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/timberhaus/sawmill-backend/internal/cart"
	"github.com/timberhaus/sawmill-backend/internal/order"
	"github.com/timberhaus/sawmill-backend/internal/product"
	"github.com/timberhaus/sawmill-backend/internal/promotion"
	"github.com/timberhaus/sawmill-backend/internal/user"
)

// countingCreator records order submissions and can be told to fail or
// stall, for exercising the submission latch.
type countingCreator struct {
	mu      sync.Mutex
	creates int
	fail    bool
	delay   time.Duration
	last    *order.Order
}

func (c *countingCreator) Create(ord order.Order) (order.Order, error) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return order.Order{}, errors.New("order store is down")
	}
	c.creates++
	ord.OrderID = c.creates
	ord.Status = order.StatusPending
	c.last = &ord
	return ord, nil
}

func (c *countingCreator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creates
}

type fixture struct {
	service *Service
	carts   *cart.Service
	users   *user.Service
	creator *countingCreator
}

// newFixture wires a checkout service around user 42, whose cart holds two
// pine planks at 150 each.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog := map[int]product.Summary{
		1: {ProductID: 1, Name: "Pine Plank", UnitPrice: decimal.NewFromInt(150)},
		2: {ProductID: 2, Name: "Oak Beam", UnitPrice: decimal.RequireFromString("890.50")},
	}
	seed := []user.User{{
		ID:        42,
		Email:     "j.smith@example.com",
		FirstName: "Jan",
		LastName:  "Smith",
		Phone:     "0821234567",
		Role:      user.RoleCustomer,
		Cart:      map[int]int{1: 2},
	}}

	carts := cart.NewService(cart.NewInMemoryRepository(seed, catalog))
	users := user.NewService(user.NewInMemoryRepository(seed))
	creator := &countingCreator{}
	promos := promotion.NewService(promotion.NewInMemoryRepository(nil))

	return &fixture{
		service: NewService(NewStore(), carts, users, creator, promos),
		carts:   carts,
		users:   users,
		creator: creator,
	}
}

func completeDetails() Details {
	return Details{
		CustomerName:   "Jan Smith",
		CustomerEmail:  "j.smith@example.com",
		PhoneNumber:    "0821234567",
		DeliveryMethod: MethodPickup,
	}
}

// reachConfirmation walks user 42's session up to the confirmation step.
func reachConfirmation(t *testing.T, f *fixture) {
	t.Helper()
	if _, err := f.service.Start(42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.service.Advance(42); err != nil {
		t.Fatalf("advance to details failed: %v", err)
	}
	if _, err := f.service.UpdateDetails(42, completeDetails()); err != nil {
		t.Fatalf("update details failed: %v", err)
	}
	if _, err := f.service.Advance(42); err != nil {
		t.Fatalf("advance to confirmation failed: %v", err)
	}
}

func TestStartRequiresItemsAndPrefills(t *testing.T) {
	f := newFixture(t)

	if _, err := f.service.Start(99); err == nil {
		t.Fatal("expected start to fail for a user without a cart")
	}

	f.carts.ClearCart(42)
	if _, err := f.service.Start(42); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	f.carts.AddToCart(42, 1, 2)
	sess, err := f.service.Start(42)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if sess.Step != StepReview {
		t.Fatalf("expected review step, got %s", sess.Step)
	}
	if sess.SessionID == "" {
		t.Fatal("expected a session id")
	}
	if sess.Details.CustomerName != "Jan Smith" || sess.Details.CustomerEmail != "j.smith@example.com" {
		t.Fatalf("expected prefilled details, got %+v", sess.Details)
	}

	// starting again does not reset the wizard
	again, err := f.service.Start(42)
	if err != nil {
		t.Fatalf("second start failed: %v", err)
	}
	if again.SessionID != sess.SessionID {
		t.Fatal("expected second start to return the live session")
	}
}

func TestAdvanceGatesOnDetails(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Start(42); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	sess, err := f.service.Advance(42)
	if err != nil {
		t.Fatalf("advance to details failed: %v", err)
	}
	if sess.Step != StepDetails {
		t.Fatalf("expected details step, got %s", sess.Step)
	}

	// wipe the prefill so the form is incomplete
	if _, err := f.service.UpdateDetails(42, Details{DeliveryMethod: MethodPickup}); err == nil {
		t.Fatal("expected incomplete details to be rejected")
	}

	sess, err = f.service.UpdateDetails(42, completeDetails())
	if err != nil {
		t.Fatalf("update details failed: %v", err)
	}
	sess, err = f.service.Advance(42)
	if err != nil {
		t.Fatalf("advance to confirmation failed: %v", err)
	}
	if sess.Step != StepConfirmation {
		t.Fatalf("expected confirmation step, got %s", sess.Step)
	}

	// the confirmation step only leaves through Confirm
	if _, err := f.service.Advance(42); err != ErrInvalidStep {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
}

func TestBackKeepsDetails(t *testing.T) {
	f := newFixture(t)
	reachConfirmation(t, f)

	sess, err := f.service.Back(42)
	if err != nil {
		t.Fatalf("back failed: %v", err)
	}
	if sess.Step != StepDetails {
		t.Fatalf("expected details step, got %s", sess.Step)
	}
	if sess.Details.CustomerName != "Jan Smith" {
		t.Fatal("expected entered details to survive going back")
	}

	sess, err = f.service.Back(42)
	if err != nil {
		t.Fatalf("back to review failed: %v", err)
	}
	if sess.Step != StepReview {
		t.Fatalf("expected review step, got %s", sess.Step)
	}
	if _, err := f.service.Back(42); err != ErrInvalidStep {
		t.Fatalf("expected ErrInvalidStep at review, got %v", err)
	}
}

func TestDeliveryRequiresAddress(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Start(42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.service.Advance(42); err != nil {
		t.Fatalf("advance failed: %v", err)
	}

	d := completeDetails()
	d.DeliveryMethod = MethodDelivery
	_, err := f.service.UpdateDetails(42, d)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	d.Delivery = &DeliveryDetails{ShippingAddress: "12 Mill Road", City: "Knysna", PostalCode: "6570"}
	if _, err := f.service.UpdateDetails(42, d); err != nil {
		t.Fatalf("expected complete delivery details to be accepted, got %v", err)
	}
}

func TestConfirmPlacesSingleOrder(t *testing.T) {
	f := newFixture(t)
	reachConfirmation(t, f)

	sess, err := f.service.Confirm(42)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if sess.Step != StepConfirmed {
		t.Fatalf("expected confirmed step, got %s", sess.Step)
	}
	if sess.OrderID != 1 {
		t.Fatalf("expected order id 1, got %d", sess.OrderID)
	}

	// two pine planks at 150, picked up at the yard
	ord := lastOrder(t, f)
	if !ord.Subtotal.Equal(decimal.NewFromInt(300)) || !ord.Total.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected 300/300, got %s/%s", ord.Subtotal, ord.Total)
	}
	if ord.ShippingAddress != order.PickupAddress {
		t.Fatalf("expected pickup address marker, got %q", ord.ShippingAddress)
	}

	items, _ := f.carts.GetCart(42)
	if len(items) != 0 {
		t.Fatalf("expected cart cleared after confirm, got %d items", len(items))
	}
	u, _ := f.users.GetByID(42)
	if len(u.OrderIDs) != 1 || u.OrderIDs[0] != 1 {
		t.Fatalf("expected order id on user, got %v", u.OrderIDs)
	}

	// confirming again cannot create a second order
	if _, err := f.service.Confirm(42); err != ErrAlreadyConfirmed {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}
	if f.creator.count() != 1 {
		t.Fatalf("expected exactly one order, got %d", f.creator.count())
	}
}

func TestConfirmOnlyFromConfirmationStep(t *testing.T) {
	f := newFixture(t)
	if _, err := f.service.Start(42); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := f.service.Confirm(42); err != ErrInvalidStep {
		t.Fatalf("expected ErrInvalidStep, got %v", err)
	}
	if f.creator.count() != 0 {
		t.Fatalf("expected no orders, got %d", f.creator.count())
	}
}

func TestFailedConfirmLeavesSessionAndCart(t *testing.T) {
	f := newFixture(t)
	reachConfirmation(t, f)
	f.creator.fail = true

	if _, err := f.service.Confirm(42); err == nil {
		t.Fatal("expected confirm to fail")
	}

	sess, err := f.service.Get(42)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if sess.Step != StepConfirmation {
		t.Fatalf("expected session still at confirmation, got %s", sess.Step)
	}
	items, _ := f.carts.GetCart(42)
	if len(items) != 1 {
		t.Fatalf("expected cart untouched after failure, got %d items", len(items))
	}

	// the latch was released, so a retry goes through
	f.creator.fail = false
	sess, err = f.service.Confirm(42)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if sess.Step != StepConfirmed || f.creator.count() != 1 {
		t.Fatalf("expected one order after retry, got step=%s count=%d", sess.Step, f.creator.count())
	}
}

func TestConcurrentConfirmsPlaceOneOrder(t *testing.T) {
	f := newFixture(t)
	reachConfirmation(t, f)
	f.creator.delay = 20 * time.Millisecond

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.Confirm(42)
		}(i)
	}
	wg.Wait()

	if f.creator.count() != 1 {
		t.Fatalf("expected exactly one order from racing confirms, got %d", f.creator.count())
	}
	okCount, busyCount := 0, 0
	for _, err := range errs {
		switch err {
		case nil:
			okCount++
		case ErrSubmissionInFlight, ErrAlreadyConfirmed:
			busyCount++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 || busyCount != 1 {
		t.Fatalf("expected one winner and one loser, got ok=%d busy=%d", okCount, busyCount)
	}
}

// stuckCarts wraps a cart service with a ClearCart that always fails.
type stuckCarts struct {
	cart.ServiceInterface
}

func (stuckCarts) ClearCart(userID int) error {
	return errors.New("cart store is down")
}

func TestConfirmSurvivesCartClearFailure(t *testing.T) {
	f := newFixture(t)
	reachConfirmation(t, f)
	f.service.carts = stuckCarts{ServiceInterface: f.carts}

	sess, err := f.service.Confirm(42)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if sess.Step != StepConfirmed || sess.OrderID != 1 {
		t.Fatalf("expected confirmed session with order 1, got step=%s order=%d", sess.Step, sess.OrderID)
	}
	if f.creator.count() != 1 {
		t.Fatalf("expected exactly one order, got %d", f.creator.count())
	}

	// a second confirm still cannot double the order
	if _, err := f.service.Confirm(42); err != ErrAlreadyConfirmed {
		t.Fatalf("expected ErrAlreadyConfirmed, got %v", err)
	}
}

func TestPromotionApplied(t *testing.T) {
	f := newFixture(t)

	promos := promotion.NewService(promotion.NewInMemoryRepository([]promotion.Promotion{
		{PromoID: 1, Name: "Yard sale", Kind: promotion.KindPercent, Value: decimal.NewFromInt(10), Active: true},
	}))
	f.service.promos = promos

	reachConfirmation(t, f)
	if _, err := f.service.Confirm(42); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	ord := lastOrder(t, f)
	if !ord.Discount.Equal(decimal.NewFromInt(30)) || !ord.Total.Equal(decimal.NewFromInt(270)) {
		t.Fatalf("expected 30 off 300, got discount=%s total=%s", ord.Discount, ord.Total)
	}
}

func lastOrder(t *testing.T, f *fixture) order.Order {
	t.Helper()
	if f.creator.last == nil {
		t.Fatal("no order was created")
	}
	return *f.creator.last
}
