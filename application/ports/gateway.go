package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/domain/catalog"
)

// Order is the payload submitted to the catalog service on checkout.
// Quantities is always all ones: the cart models one unit per entry.
type Order struct {
	CustomerName  string
	CustomerPhone string
	LessonIDs     []string
	Quantities    []int
	TotalPrice    decimal.Decimal
}

// OrderConfirmation is the catalog service's reply to a submitted order
type OrderConfirmation struct {
	OrderID string
	Message string
}

// CatalogGateway is the port to the remote catalog service.
// This is a pure I/O boundary - no business logic lives behind it.
type CatalogGateway interface {
	// ListLessons fetches the full catalog. Transport and decoding failures
	// are returned to the caller; there is no retry.
	ListLessons(ctx context.Context) ([]*catalog.Lesson, error)

	// SearchLessons asks the service for a server-side filtered catalog.
	// Fail-soft contract: on any failure it returns an empty slice, never an
	// error - search degrades to "no results" rather than breaking the view.
	SearchLessons(ctx context.Context, query string) []*catalog.Lesson

	// SubmitOrder posts an order. Failures surface as ORDER_SUBMISSION errors.
	SubmitOrder(ctx context.Context, order Order) (*OrderConfirmation, error)

	// UpdateSpaces pushes a lesson's remaining spaces to the service.
	// Best-effort: failures are logged and swallowed, so checkout completion
	// never depends on this call succeeding.
	UpdateSpaces(ctx context.Context, lessonID string, spaces int)
}
