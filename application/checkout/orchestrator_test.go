package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/application/ports"
	"storefront/application/store"
	"storefront/domain/catalog"
	pkgerrors "storefront/pkg/errors"
)

// MockGateway is a testify mock of the catalog gateway port
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) ListLessons(ctx context.Context) ([]*catalog.Lesson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Lesson), args.Error(1)
}

func (m *MockGateway) SearchLessons(ctx context.Context, query string) []*catalog.Lesson {
	args := m.Called(ctx, query)
	return args.Get(0).([]*catalog.Lesson)
}

func (m *MockGateway) SubmitOrder(ctx context.Context, order ports.Order) (*ports.OrderConfirmation, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.OrderConfirmation), args.Error(1)
}

func (m *MockGateway) UpdateSpaces(ctx context.Context, lessonID string, spaces int) {
	m.Called(ctx, lessonID, spaces)
}

func mustLesson(t *testing.T, id, subject string, price float64, spaces int) *catalog.Lesson {
	t.Helper()
	lesson, err := catalog.ReconstructLesson(id, subject, "London", decimal.NewFromFloat(price), spaces, subject+".gif", 4)
	require.NoError(t, err)
	return lesson
}

func storeWith(t *testing.T, lessons ...*catalog.Lesson) *store.Store {
	t.Helper()
	st := store.New(zap.NewNop())
	require.True(t, st.ReplaceCatalog(lessons, st.BeginCatalogUpdate()))
	return st
}

func TestCheckout_RejectedOnInvalidName(t *testing.T) {
	// Arrange
	gw := new(MockGateway)
	st := storeWith(t, mustLesson(t, "l1", "Math", 10, 1))
	require.True(t, st.AddToCart("l1"))
	st.SetName("Jo3")
	st.SetPhone("1234")

	o := New(gw, st, zap.NewNop())

	// Act
	result := o.Checkout(context.Background())

	// Assert
	assert.Equal(t, StateRejected, result.State)
	assert.Equal(t, "Please fix errors before submitting!", result.Message)
	assert.Equal(t, 1, st.Snapshot().Cart.Len())
	gw.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "UpdateSpaces", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_RejectedOnEmptyCart(t *testing.T) {
	gw := new(MockGateway)
	st := storeWith(t, mustLesson(t, "l1", "Math", 10, 1))
	st.SetName("Jo Smith")
	st.SetPhone("1234")

	result := New(gw, st, zap.NewNop()).Checkout(context.Background())

	assert.Equal(t, StateRejected, result.State)
	gw.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestCheckout_RejectedOnEmptyFields(t *testing.T) {
	// Empty fields soft-pass validation but must still block checkout
	gw := new(MockGateway)
	st := storeWith(t, mustLesson(t, "l1", "Math", 10, 1))
	require.True(t, st.AddToCart("l1"))

	result := New(gw, st, zap.NewNop()).Checkout(context.Background())

	assert.Equal(t, StateRejected, result.State)
	gw.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything)
}

func TestCheckout_FailedSubmissionLeavesStateUntouched(t *testing.T) {
	// Arrange
	gw := new(MockGateway)
	st := storeWith(t, mustLesson(t, "l1", "Math", 10, 2))
	require.True(t, st.AddToCart("l1"))
	st.SetName("Jo Smith")
	st.SetPhone("1234")

	gw.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(nil, pkgerrors.NewOrderSubmissionError(errors.New("boom")))

	// Act
	result := New(gw, st, zap.NewNop()).Checkout(context.Background())

	// Assert
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, "Failed to submit order. Please try again.", result.Message)

	snap := st.Snapshot()
	assert.Equal(t, 1, snap.Cart.Len(), "cart must survive a failed submission")
	assert.Equal(t, "Jo Smith", snap.Name)
	assert.Equal(t, "1234", snap.Phone)
	assert.False(t, snap.ShowPopup)
	gw.AssertNotCalled(t, "UpdateSpaces", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_CompletedFlow(t *testing.T) {
	// Arrange
	gw := new(MockGateway)
	st := storeWith(t,
		mustLesson(t, "l1", "Math", 10, 2),
		mustLesson(t, "l2", "Art", 20.50, 1),
	)
	require.True(t, st.AddToCart("l1"))
	require.True(t, st.AddToCart("l2"))
	st.SetName("Jo Smith")
	st.SetPhone("1234")

	gw.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(order ports.Order) bool {
		return order.CustomerName == "Jo Smith" &&
			order.CustomerPhone == "1234" &&
			assert.ObjectsAreEqual([]string{"l1", "l2"}, order.LessonIDs) &&
			assert.ObjectsAreEqual([]int{1, 1}, order.Quantities) &&
			order.TotalPrice.Equal(decimal.NewFromFloat(30.50))
	})).Return(&ports.OrderConfirmation{OrderID: "o1"}, nil)

	// Spaces were decremented by the adds: l1 2->1, l2 1->0
	gw.On("UpdateSpaces", mock.Anything, "l1", 1).Once()
	gw.On("UpdateSpaces", mock.Anything, "l2", 0).Once()

	// Act
	result := New(gw, st, zap.NewNop()).Checkout(context.Background())

	// Assert
	assert.Equal(t, StateCompleted, result.State)
	assert.Equal(t, "Hi Jo Smith, your order totaling £30.50 has been submitted!", result.Message)

	snap := st.Snapshot()
	assert.True(t, snap.Cart.IsEmpty())
	assert.Empty(t, snap.Name)
	assert.Empty(t, snap.Phone)
	assert.True(t, snap.ShowPopup)
	assert.True(t, snap.OrderCompleted)
	assert.Equal(t, result.Message, snap.CheckoutMessage)
	gw.AssertExpectations(t)
}

func TestCheckout_SpaceSyncSkippedForLessonsMissingFromCatalog(t *testing.T) {
	gw := new(MockGateway)
	st := storeWith(t, mustLesson(t, "l1", "Math", 10, 2))
	require.True(t, st.AddToCart("l1"))
	st.SetName("Jo Smith")
	st.SetPhone("1234")

	// A search replaced the catalog before checkout ran
	require.True(t, st.ReplaceCatalog([]*catalog.Lesson{mustLesson(t, "l9", "Music", 5, 5)}, st.BeginCatalogUpdate()))

	gw.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(&ports.OrderConfirmation{OrderID: "o2"}, nil)

	result := New(gw, st, zap.NewNop()).Checkout(context.Background())

	assert.Equal(t, StateCompleted, result.State)
	gw.AssertNotCalled(t, "UpdateSpaces", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckout_MessageFormatsWholePrices(t *testing.T) {
	gw := new(MockGateway)
	st := storeWith(t, mustLesson(t, "l1", "Math", 10, 1))
	require.True(t, st.AddToCart("l1"))
	st.SetName("Jo")
	st.SetPhone("1")

	gw.On("SubmitOrder", mock.Anything, mock.Anything).
		Return(&ports.OrderConfirmation{OrderID: "o3"}, nil)
	gw.On("UpdateSpaces", mock.Anything, "l1", 0).Once()

	result := New(gw, st, zap.NewNop()).Checkout(context.Background())

	assert.Equal(t, "Hi Jo, your order totaling £10.00 has been submitted!", result.Message)
}
