// Package checkout sequences validation, order submission, and space
// synchronization against the remote catalog service.
package checkout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/application/derive"
	"storefront/application/ports"
	"storefront/application/store"
	"storefront/domain/validation"
)

// State identifies where a checkout run is in its lifecycle
type State string

const (
	StateIdle          State = "IDLE"
	StateValidating    State = "VALIDATING"
	StateSubmitting    State = "SUBMITTING"
	StateSyncingSpaces State = "SYNCING_SPACES"
	StateCompleted     State = "COMPLETED"

	// StateRejected is terminal: validation failed, nothing left the client.
	StateRejected State = "REJECTED"
	// StateFailed is terminal: the remote service refused the order. Cart and
	// form are left untouched so the user can retry.
	StateFailed State = "FAILED"
)

// User-visible messages for the two failure terminals.
const (
	rejectedMessage = "Please fix errors before submitting!"
	failedMessage   = "Failed to submit order. Please try again."
)

// Result reports the terminal state of a checkout run and the message to
// show the user.
type Result struct {
	State   State
	Message string
}

// Orchestrator drives the checkout state machine
// Idle -> Validating -> Submitting -> SyncingSpaces -> Completed,
// with Rejected reachable from Validating and Failed from Submitting.
type Orchestrator struct {
	gateway ports.CatalogGateway
	store   *store.Store
	logger  *zap.Logger
}

// New creates a checkout orchestrator
func New(gateway ports.CatalogGateway, st *store.Store, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		gateway: gateway,
		store:   st,
		logger:  logger,
	}
}

// Checkout runs the state machine once. It never returns a transport error
// directly: every outcome is folded into a terminal Result.
func (o *Orchestrator) Checkout(ctx context.Context) Result {
	snap := o.store.Snapshot()

	// Validating: re-run field validation on the current form. No network
	// call happens unless this phase passes.
	o.logger.Debug("checkout state", zap.String("state", string(StateValidating)))
	nameResult := validation.Name(snap.Name)
	phoneResult := validation.Phone(snap.Phone)
	if !derive.CanCheckout(snap.Cart, snap.Name, snap.Phone, nameResult.Valid, phoneResult.Valid) {
		o.logger.Info("checkout rejected",
			zap.Bool("nameValid", nameResult.Valid),
			zap.Bool("phoneValid", phoneResult.Valid),
			zap.Int("cartSize", snap.Cart.Len()),
		)
		return Result{State: StateRejected, Message: rejectedMessage}
	}

	// Submitting: build the order payload and post it.
	o.logger.Debug("checkout state", zap.String("state", string(StateSubmitting)))
	entries := snap.Cart.Entries()
	order := ports.Order{
		CustomerName:  snap.Name,
		CustomerPhone: snap.Phone,
		LessonIDs:     make([]string, len(entries)),
		Quantities:    make([]int, len(entries)),
		TotalPrice:    derive.CartTotal(snap.Cart),
	}
	for i, entry := range entries {
		order.LessonIDs[i] = entry.LessonID()
		order.Quantities[i] = 1
	}

	confirmation, err := o.gateway.SubmitOrder(ctx, order)
	if err != nil {
		// Cart and form stay exactly as they were; the user can retry.
		o.logger.Error("order submission failed", zap.Error(err))
		return Result{State: StateFailed, Message: failedMessage}
	}
	o.logger.Info("order accepted",
		zap.String("orderID", confirmation.OrderID),
		zap.String("total", order.TotalPrice.StringFixed(2)),
	)

	// SyncingSpaces: push each booked lesson's current spaces, strictly one
	// at a time. Failures are swallowed by the gateway; none of them may
	// block the remaining items or the completion of checkout.
	o.logger.Debug("checkout state", zap.String("state", string(StateSyncingSpaces)))
	for _, entry := range entries {
		spaces, ok := o.store.SpacesFor(entry.LessonID())
		if !ok {
			// The catalog snapshot no longer lists this lesson; there is no
			// current count to push.
			o.logger.Warn("skipping space sync for lesson missing from catalog",
				zap.String("lessonID", entry.LessonID()),
			)
			continue
		}
		o.gateway.UpdateSpaces(ctx, entry.LessonID(), spaces)
	}

	// Completed: reset cart and form, record the confirmation message.
	message := fmt.Sprintf("Hi %s, your order totaling £%s has been submitted!",
		snap.Name, order.TotalPrice.StringFixed(2))
	o.store.CompleteCheckout(message)
	o.logger.Debug("checkout state", zap.String("state", string(StateCompleted)))

	return Result{State: StateCompleted, Message: message}
}
