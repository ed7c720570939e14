package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/domain/catalog"
)

// Entry is one booked unit in the cart. It snapshots the lesson's display
// fields at the time of adding, so a later catalog refresh cannot change what
// the customer sees in their cart. Entries always represent a quantity of one;
// adding the same lesson twice produces two entries with distinct entry IDs.
type Entry struct {
	entryID  string
	lessonID string
	subject  string
	location string
	price    decimal.Decimal
	image    string
}

// NewEntry creates a cart entry from a lesson, with a fresh unique entry ID
func NewEntry(lesson *catalog.Lesson) Entry {
	return Entry{
		entryID:  uuid.New().String(),
		lessonID: lesson.ID(),
		subject:  lesson.Subject(),
		location: lesson.Location(),
		price:    lesson.Price(),
		image:    lesson.Image(),
	}
}

// EntryID returns the unique identifier of this cart entry
func (e Entry) EntryID() string {
	return e.entryID
}

// LessonID returns the catalog identifier of the booked lesson
func (e Entry) LessonID() string {
	return e.lessonID
}

// Subject returns the booked lesson's subject
func (e Entry) Subject() string {
	return e.subject
}

// Location returns the booked lesson's location
func (e Entry) Location() string {
	return e.location
}

// Price returns the price of this entry
func (e Entry) Price() decimal.Decimal {
	return e.price
}

// Image returns the booked lesson's image path
func (e Entry) Image() string {
	return e.image
}

// Cart is an insertion-ordered sequence of entries
type Cart struct {
	entries []Entry
}

// New creates an empty cart
func New() *Cart {
	return &Cart{entries: []Entry{}}
}

// Add appends an entry, preserving insertion order
func (c *Cart) Add(entry Entry) {
	c.entries = append(c.entries, entry)
}

// Remove deletes the entry with the given entry ID and returns it.
// The second return value is false when no entry matches.
func (c *Cart) Remove(entryID string) (Entry, bool) {
	for i, e := range c.entries {
		if e.entryID == entryID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return e, true
		}
	}
	return Entry{}, false
}

// Clear removes all entries
func (c *Cart) Clear() {
	c.entries = []Entry{}
}

// Len returns the number of entries
func (c *Cart) Len() int {
	return len(c.entries)
}

// IsEmpty reports whether the cart has no entries
func (c *Cart) IsEmpty() bool {
	return len(c.entries) == 0
}

// Entries returns a copy of the entries in insertion order
func (c *Cart) Entries() []Entry {
	entries := make([]Entry, len(c.entries))
	copy(entries, c.entries)
	return entries
}
