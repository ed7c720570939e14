package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "storefront/pkg/errors"
)

func TestNewLesson_Valid(t *testing.T) {
	lesson, err := NewLesson("l1", "Math", "London", decimal.NewFromInt(10), 5)

	require.NoError(t, err)
	assert.Equal(t, "l1", lesson.ID())
	assert.Equal(t, "Math", lesson.Subject())
	assert.Equal(t, "London", lesson.Location())
	assert.True(t, lesson.Price().Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 5, lesson.Spaces())
}

func TestNewLesson_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		subject  string
		price    decimal.Decimal
		spaces   int
	}{
		{name: "empty id", id: "", subject: "Math", price: decimal.NewFromInt(10), spaces: 5},
		{name: "empty subject", id: "l1", subject: "", price: decimal.NewFromInt(10), spaces: 5},
		{name: "negative price", id: "l1", subject: "Math", price: decimal.NewFromInt(-1), spaces: 5},
		{name: "negative spaces", id: "l1", subject: "Math", price: decimal.NewFromInt(10), spaces: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLesson(tt.id, tt.subject, "London", tt.price, tt.spaces)
			assert.True(t, pkgerrors.IsValidation(err))
		})
	}
}

func TestLesson_Book(t *testing.T) {
	lesson, err := NewLesson("l1", "Math", "London", decimal.NewFromInt(10), 1)
	require.NoError(t, err)

	require.NoError(t, lesson.Book())
	assert.Equal(t, 0, lesson.Spaces())
	assert.False(t, lesson.HasSpace())

	// A full lesson cannot be booked again
	err = lesson.Book()
	assert.Error(t, err)
	assert.Equal(t, 0, lesson.Spaces())
}

func TestLesson_BookRelease_RoundTrip(t *testing.T) {
	lesson, err := NewLesson("l1", "Math", "London", decimal.NewFromInt(10), 3)
	require.NoError(t, err)

	require.NoError(t, lesson.Book())
	lesson.Release()

	assert.Equal(t, 3, lesson.Spaces())
}

func TestLesson_SetSpaces(t *testing.T) {
	lesson, err := NewLesson("l1", "Math", "London", decimal.NewFromInt(10), 3)
	require.NoError(t, err)

	require.NoError(t, lesson.SetSpaces(7))
	assert.Equal(t, 7, lesson.Spaces())

	assert.Error(t, lesson.SetSpaces(-1))
	assert.Equal(t, 7, lesson.Spaces())
}

func TestLesson_Clone(t *testing.T) {
	lesson, err := ReconstructLesson("l1", "Math", "London", decimal.NewFromInt(10), 3, "math.gif", 4.5)
	require.NoError(t, err)

	clone := lesson.Clone()
	require.NoError(t, clone.Book())

	assert.Equal(t, 3, lesson.Spaces())
	assert.Equal(t, 2, clone.Spaces())
	assert.Equal(t, "math.gif", clone.Image())
	assert.Equal(t, 4.5, clone.Rating())
}
