// Package store holds the single in-memory state object behind the
// storefront: the catalog snapshot, the cart, the checkout form, and the
// view state. All mutation goes through Store methods; nothing else may
// touch the spaces counters or the cart.
package store

import (
	"sync"

	"go.uber.org/zap"

	"storefront/application/derive"
	"storefront/domain/cart"
	"storefront/domain/catalog"
	"storefront/domain/validation"
)

// Snapshot is a consistent, read-only copy of the store's state.
// Derived views (filtering, totals, checkout readiness) are computed from it
// with the derive package.
type Snapshot struct {
	Lessons []*catalog.Lesson
	Cart    *cart.Cart

	SearchQuery string
	SortKey     derive.SortKey
	SortOrder   derive.SortOrder
	ShowCart    bool

	Name       string
	Phone      string
	NameError  string
	PhoneError string
	NameValid  bool
	PhoneValid bool

	CheckoutMessage string
	ShowPopup       bool
	OrderCompleted  bool
}

// Store owns the catalog and cart exclusively
type Store struct {
	mu sync.Mutex

	lessons []*catalog.Lesson
	cart    *cart.Cart

	searchQuery string
	sortKey     derive.SortKey
	sortOrder   derive.SortOrder
	showCart    bool

	name        string
	phone       string
	nameResult  validation.Result
	phoneResult validation.Result

	checkoutMessage string
	showPopup       bool
	orderCompleted  bool

	// Catalog replacements carry a token from BeginCatalogUpdate; a
	// replacement older than the last applied one is discarded. This is the
	// last-issued-wins discipline for overlapping search responses.
	nextToken    uint64
	appliedToken uint64

	subscribers []func()
	logger      *zap.Logger
}

// New creates an empty store
func New(logger *zap.Logger) *Store {
	return &Store{
		cart:        cart.New(),
		sortOrder:   derive.Ascending,
		nameResult:  validation.Result{Valid: true},
		phoneResult: validation.Result{Valid: true},
		logger:      logger,
	}
}

// Subscribe registers a callback invoked after every state mutation.
// Callbacks run outside the store lock and may read a fresh Snapshot.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// BeginCatalogUpdate allocates a monotonically increasing token for an
// upcoming catalog replacement. Allocate before issuing the request so a
// slower, earlier request can never clobber a newer result.
func (s *Store) BeginCatalogUpdate() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextToken++
	return s.nextToken
}

// ReplaceCatalog wholesale-replaces the catalog snapshot. The cart is not
// touched. Returns false when a newer replacement already landed and this
// one was discarded as stale.
func (s *Store) ReplaceCatalog(lessons []*catalog.Lesson, token uint64) bool {
	s.mu.Lock()
	if token < s.appliedToken {
		s.mu.Unlock()
		s.logger.Debug("discarding stale catalog replacement",
			zap.Uint64("token", token),
			zap.Uint64("applied", s.appliedToken),
		)
		return false
	}
	s.appliedToken = token
	s.lessons = lessons
	s.mu.Unlock()

	s.notify()
	return true
}

// AddToCart books one space on the lesson and appends a cart entry
// snapshotting its display fields. A lesson without spaces is a no-op.
// The decrement and the append happen under one lock, so concurrent adds
// can never drive spaces below zero.
func (s *Store) AddToCart(lessonID string) bool {
	s.mu.Lock()
	lesson := s.findLesson(lessonID)
	if lesson == nil || !lesson.HasSpace() {
		s.mu.Unlock()
		return false
	}
	if err := lesson.Book(); err != nil {
		s.mu.Unlock()
		return false
	}
	s.cart.Add(cart.NewEntry(lesson))
	s.mu.Unlock()

	s.notify()
	return true
}

// RemoveFromCart removes the entry and gives the space back to the lesson.
// When the catalog snapshot no longer contains the lesson (a search replaced
// it), the restore is silently skipped.
func (s *Store) RemoveFromCart(entryID string) bool {
	s.mu.Lock()
	entry, ok := s.cart.Remove(entryID)
	if !ok {
		s.mu.Unlock()
		return false
	}
	if lesson := s.findLesson(entry.LessonID()); lesson != nil {
		lesson.Release()
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// SetSearchQuery records the current search input
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	s.searchQuery = query
	s.mu.Unlock()
	s.notify()
}

// SetSort sets the sort key and direction for the derived view
func (s *Store) SetSort(key derive.SortKey, order derive.SortOrder) {
	s.mu.Lock()
	s.sortKey = key
	s.sortOrder = order
	s.mu.Unlock()
	s.notify()
}

// ToggleView switches between the catalog page and the cart page
func (s *Store) ToggleView() {
	s.mu.Lock()
	s.showCart = !s.showCart
	s.mu.Unlock()
	s.notify()
}

// ClosePopup hides the order confirmation. Pure UI state, not part of the
// checkout state machine.
func (s *Store) ClosePopup() {
	s.mu.Lock()
	s.showPopup = false
	s.mu.Unlock()
	s.notify()
}

// SetName records a name input event and re-runs field validation
func (s *Store) SetName(name string) {
	s.mu.Lock()
	s.name = name
	s.nameResult = validation.Name(name)
	s.mu.Unlock()
	s.notify()
}

// SetPhone records a phone input event and re-runs field validation
func (s *Store) SetPhone(phone string) {
	s.mu.Lock()
	s.phone = phone
	s.phoneResult = validation.Phone(phone)
	s.mu.Unlock()
	s.notify()
}

// SpacesFor returns the current remaining spaces for a lesson in the catalog
// snapshot. Used by the checkout orchestrator when syncing spaces remotely.
func (s *Store) SpacesFor(lessonID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lesson := s.findLesson(lessonID); lesson != nil {
		return lesson.Spaces(), true
	}
	return 0, false
}

// CompleteCheckout clears the cart, the form fields, and their errors, and
// records the success message. Called by the orchestrator only after the
// order was accepted remotely.
func (s *Store) CompleteCheckout(message string) {
	s.mu.Lock()
	s.cart.Clear()
	s.name = ""
	s.phone = ""
	s.nameResult = validation.Result{Valid: true}
	s.phoneResult = validation.Result{Valid: true}
	s.checkoutMessage = message
	s.showPopup = true
	s.orderCompleted = true
	s.mu.Unlock()
	s.notify()
}

// Snapshot returns a consistent copy of the current state. Lessons are
// cloned so callers cannot mutate spaces behind the store's back.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lessons := make([]*catalog.Lesson, len(s.lessons))
	for i, l := range s.lessons {
		lessons[i] = l.Clone()
	}

	cartCopy := cart.New()
	for _, entry := range s.cart.Entries() {
		cartCopy.Add(entry)
	}

	return Snapshot{
		Lessons:         lessons,
		Cart:            cartCopy,
		SearchQuery:     s.searchQuery,
		SortKey:         s.sortKey,
		SortOrder:       s.sortOrder,
		ShowCart:        s.showCart,
		Name:            s.name,
		Phone:           s.phone,
		NameError:       s.nameResult.Message,
		PhoneError:      s.phoneResult.Message,
		NameValid:       s.nameResult.Valid,
		PhoneValid:      s.phoneResult.Valid,
		CheckoutMessage: s.checkoutMessage,
		ShowPopup:       s.showPopup,
		OrderCompleted:  s.orderCompleted,
	}
}

// findLesson must be called with the lock held
func (s *Store) findLesson(lessonID string) *catalog.Lesson {
	for _, l := range s.lessons {
		if l.ID() == lessonID {
			return l
		}
	}
	return nil
}
