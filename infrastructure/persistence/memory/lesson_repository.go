// Package memory backs the development catalog service with in-process
// state. Lessons reset to the seed data on every restart, which is exactly
// what a local fixture service should do.
package memory

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/domain/catalog"
	pkgerrors "storefront/pkg/errors"
)

// OrderRecord is a stored order as received by POST /orders
type OrderRecord struct {
	ID         string
	Name       string
	Phone      string
	LessonIDs  []string
	Quantities []int
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
}

// LessonRepository stores lessons and orders behind one lock
type LessonRepository struct {
	mu      sync.RWMutex
	lessons []*catalog.Lesson
	orders  []OrderRecord
}

// NewLessonRepository creates a repository holding the given lessons
func NewLessonRepository(lessons []*catalog.Lesson) *LessonRepository {
	return &LessonRepository{lessons: lessons}
}

// List returns a cloned copy of every lesson
func (r *LessonRepository) List() []*catalog.Lesson {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneAll(r.lessons)
}

// Search returns clones of lessons matching the query: case-insensitive
// substring over subject, location, stringified price, and stringified
// spaces. This is the server-side twin of the client's local filter.
func (r *LessonRepository) Search(query string) []*catalog.Lesson {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if query == "" {
		return cloneAll(r.lessons)
	}

	q := strings.ToLower(query)
	matched := []*catalog.Lesson{}
	for _, l := range r.lessons {
		if strings.Contains(strings.ToLower(l.Subject()), q) ||
			strings.Contains(strings.ToLower(l.Location()), q) ||
			strings.Contains(l.Price().String(), q) ||
			strings.Contains(strconv.Itoa(l.Spaces()), q) {
			matched = append(matched, l.Clone())
		}
	}
	return matched
}

// UpdateSpaces overwrites a lesson's remaining spaces
func (r *LessonRepository) UpdateSpaces(lessonID string, spaces int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.lessons {
		if l.ID() == lessonID {
			return l.SetSpaces(spaces)
		}
	}
	return pkgerrors.NewNotFoundError("lesson")
}

// CreateOrder stores an order and returns it with a generated id
func (r *LessonRepository) CreateOrder(record OrderRecord) OrderRecord {
	record.ID = uuid.New().String()
	record.CreatedAt = time.Now()

	r.mu.Lock()
	r.orders = append(r.orders, record)
	r.mu.Unlock()
	return record
}

// Orders returns a copy of the stored orders in arrival order
func (r *LessonRepository) Orders() []OrderRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	orders := make([]OrderRecord, len(r.orders))
	copy(orders, r.orders)
	return orders
}

func cloneAll(lessons []*catalog.Lesson) []*catalog.Lesson {
	out := make([]*catalog.Lesson, len(lessons))
	for i, l := range lessons {
		out[i] = l.Clone()
	}
	return out
}

// SeedLessons is the development catalog served by lessonsd
func SeedLessons() []*catalog.Lesson {
	seed := []struct {
		id       string
		subject  string
		location string
		price    string
		spaces   int
		image    string
		rating   float64
	}{
		{"1", "Math", "London", "100", 5, "math.gif", 4.5},
		{"2", "English", "Bristol", "85", 5, "english.gif", 4},
		{"3", "Science", "Oxford", "90", 5, "science.gif", 4.5},
		{"4", "Art", "York", "70", 5, "art.gif", 3.5},
		{"5", "Music", "London", "110", 5, "music.gif", 5},
		{"6", "History", "Leeds", "80", 5, "history.gif", 3},
		{"7", "Geography", "Manchester", "75", 5, "geography.gif", 4},
		{"8", "Chemistry", "Oxford", "95", 5, "chemistry.gif", 4.5},
		{"9", "Physics", "Cambridge", "120", 5, "physics.gif", 5},
		{"10", "Biology", "London", "105", 5, "biology.gif", 4},
	}

	lessons := make([]*catalog.Lesson, 0, len(seed))
	for _, s := range seed {
		price, err := decimal.NewFromString(s.price)
		if err != nil {
			panic(err)
		}
		lesson, err := catalog.ReconstructLesson(s.id, s.subject, s.location, price, s.spaces, s.image, s.rating)
		if err != nil {
			panic(err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons
}
