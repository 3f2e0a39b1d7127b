package checkout

import (
	"errors"
	"sync"
)

var (
	ErrNoSession          = errors.New("no checkout session")
	ErrInvalidStep        = errors.New("operation not allowed at this step")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
	ErrAlreadyConfirmed   = errors.New("checkout already confirmed")
)

// Session is one customer's trip through the checkout wizard. A user has at
// most one live session. The submitting latch is owned by the Store and is
// never exposed over the wire.
type Session struct {
	SessionID string  `json:"sessionId"`
	UserID    int     `json:"userId"`
	Step      Step    `json:"step"`
	Details   Details `json:"details"`
	OrderID   int     `json:"orderId,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`

	submitting bool
}

// Store keeps checkout sessions in memory, keyed by user. Sessions are
// wizard scratch state, not durable data: a restart simply sends the
// customer back to the cart.
type Store struct {
	mu       sync.Mutex
	sessions map[int]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int]*Session)}
}

// Get returns a copy of the user's session.
func (s *Store) Get(userID int) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}
	return *sess, nil
}

// Put stores the session, replacing any previous one for the same user.
func (s *Store) Put(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = &sess
}

// Update applies fn to the user's session under the store lock. fn never
// runs for a confirmed session or while a submission is in flight.
func (s *Store) Update(userID int, updatedAt string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}
	if sess.Step.IsTerminal() {
		return Session{}, ErrAlreadyConfirmed
	}
	if sess.submitting {
		return Session{}, ErrSubmissionInFlight
	}
	if err := fn(sess); err != nil {
		return Session{}, err
	}
	sess.UpdatedAt = updatedAt
	return *sess, nil
}

// BeginSubmit acquires the submission latch. Exactly one caller wins while
// the session sits on the confirmation step; everyone else gets an error.
// The latch is released by FailSubmit or consumed by CompleteSubmit.
func (s *Store) BeginSubmit(userID int) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}
	if sess.Step.IsTerminal() {
		return Session{}, ErrAlreadyConfirmed
	}
	if sess.submitting {
		return Session{}, ErrSubmissionInFlight
	}
	if sess.Step != StepConfirmation {
		return Session{}, ErrInvalidStep
	}
	sess.submitting = true
	return *sess, nil
}

// FailSubmit releases the latch after a failed submission, leaving the
// session on the confirmation step so the customer can retry.
func (s *Store) FailSubmit(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[userID]; ok {
		sess.submitting = false
	}
}

// CompleteSubmit records the created order and moves the session to its
// terminal step.
func (s *Store) CompleteSubmit(userID int, orderID int, updatedAt string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return Session{}, ErrNoSession
	}
	sess.submitting = false
	sess.Step = StepConfirmed
	sess.OrderID = orderID
	sess.UpdatedAt = updatedAt
	return *sess, nil
}

// Delete drops the user's session.
func (s *Store) Delete(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
