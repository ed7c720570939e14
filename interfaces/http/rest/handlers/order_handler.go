package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/infrastructure/persistence/memory"
	"storefront/pkg/common"
	pkgerrors "storefront/pkg/errors"
)

// CreateOrderRequest represents the request body for submitting an order
type CreateOrderRequest struct {
	Name       string   `json:"name" validate:"required"`
	Phone      string   `json:"phone" validate:"required,numeric"`
	LessonIDs  []string `json:"lessonIDs" validate:"required,min=1,dive,required"`
	Quantities []int    `json:"quantities" validate:"required,min=1,dive,gte=1"`
	TotalPrice float64  `json:"totalPrice" validate:"gte=0"`
}

// CreateOrderResponse is the confirmation returned for an accepted order
type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	repo   *memory.LessonRepository
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(repo *memory.LessonRepository, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, errors: errHandler, logger: logger}
}

// Create handles POST /orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, decodeError(err))
		return
	}
	if err := validate.Struct(req); err != nil {
		h.errors.Handle(w, r, validationError(err))
		return
	}
	if len(req.LessonIDs) != len(req.Quantities) {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(
			"lessonIDs and quantities must have the same length"))
		return
	}

	record := h.repo.CreateOrder(memory.OrderRecord{
		Name:       req.Name,
		Phone:      req.Phone,
		LessonIDs:  req.LessonIDs,
		Quantities: req.Quantities,
		TotalPrice: decimal.NewFromFloat(req.TotalPrice),
	})

	h.logger.Info("order received",
		zap.String("orderID", record.ID),
		zap.Int("lessons", len(record.LessonIDs)),
		zap.String("total", record.TotalPrice.StringFixed(2)),
	)

	common.RespondJSON(w, http.StatusCreated, CreateOrderResponse{
		OrderID: record.ID,
		Message: "order received",
	})
}
