package catalog

import (
	"github.com/shopspring/decimal"

	pkgerrors "storefront/pkg/errors"
)

// Lesson is the main entity representing a bookable catalog item.
// Spaces bookkeeping is encapsulated here: the counter only moves through
// Book and Release, which the store calls in lockstep with cart membership.
type Lesson struct {
	id       string
	subject  string
	location string
	price    decimal.Decimal
	spaces   int
	image    string
	rating   float64
}

// NewLesson creates a lesson with business rule validation
func NewLesson(id, subject, location string, price decimal.Decimal, spaces int) (*Lesson, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("lesson id cannot be empty")
	}
	if subject == "" {
		return nil, pkgerrors.NewValidationError("subject cannot be empty")
	}
	if price.IsNegative() {
		return nil, pkgerrors.NewValidationError("price cannot be negative")
	}
	if spaces < 0 {
		return nil, pkgerrors.NewValidationError("spaces cannot be negative")
	}

	return &Lesson{
		id:       id,
		subject:  subject,
		location: location,
		price:    price,
		spaces:   spaces,
	}, nil
}

// ReconstructLesson rebuilds a lesson from remote catalog data, including
// the display-only image and rating metadata.
func ReconstructLesson(id, subject, location string, price decimal.Decimal, spaces int, image string, rating float64) (*Lesson, error) {
	lesson, err := NewLesson(id, subject, location, price, spaces)
	if err != nil {
		return nil, err
	}
	lesson.image = image
	lesson.rating = rating
	return lesson, nil
}

// ID returns the lesson's catalog identifier
func (l *Lesson) ID() string {
	return l.id
}

// Subject returns the lesson's subject
func (l *Lesson) Subject() string {
	return l.subject
}

// Location returns where the lesson is held
func (l *Lesson) Location() string {
	return l.location
}

// Price returns the price of a single space
func (l *Lesson) Price() decimal.Decimal {
	return l.price
}

// Spaces returns the remaining availability
func (l *Lesson) Spaces() int {
	return l.spaces
}

// Image returns the lesson's image path
func (l *Lesson) Image() string {
	return l.image
}

// Rating returns the display-only rating
func (l *Lesson) Rating() float64 {
	return l.rating
}

// HasSpace reports whether at least one space remains
func (l *Lesson) HasSpace() bool {
	return l.spaces > 0
}

// Book takes one space. It is the only way spaces decrease.
func (l *Lesson) Book() error {
	if l.spaces <= 0 {
		return pkgerrors.NewConflictError("no spaces left")
	}
	l.spaces--
	return nil
}

// Release returns one space, used when a cart entry for this lesson is removed.
func (l *Lesson) Release() {
	l.spaces++
}

// SetSpaces overwrites the remaining availability. Used by the development
// catalog service when applying a PUT /lessons/{id} update.
func (l *Lesson) SetSpaces(spaces int) error {
	if spaces < 0 {
		return pkgerrors.NewValidationError("spaces cannot be negative")
	}
	l.spaces = spaces
	return nil
}

// Clone returns an independent copy of the lesson
func (l *Lesson) Clone() *Lesson {
	c := *l
	return &c
}
