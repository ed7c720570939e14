// Package gateway implements the HTTP client for the remote catalog service.
// It is a pure I/O boundary: request, decode, map to domain. No retries.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"storefront/application/ports"
	"storefront/domain/catalog"
	pkgerrors "storefront/pkg/errors"
)

// lessonDTO is the wire shape of a catalog item
type lessonDTO struct {
	ID       string          `json:"id"`
	Subject  string          `json:"subject"`
	Location string          `json:"location"`
	Price    decimal.Decimal `json:"price"`
	Spaces   int             `json:"spaces"`
	Image    string          `json:"image"`
	Rating   float64         `json:"rating,omitempty"`
}

// orderDTO is the wire shape of a submitted order
type orderDTO struct {
	Name       string   `json:"name"`
	Phone      string   `json:"phone"`
	LessonIDs  []string `json:"lessonIDs"`
	Quantities []int    `json:"quantities"`
	TotalPrice float64  `json:"totalPrice"`
}

// confirmationDTO is the wire shape of the order confirmation
type confirmationDTO struct {
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// spacesDTO is the body of a PUT /lessons/{id} update
type spacesDTO struct {
	Spaces int `json:"spaces"`
}

// Client talks to the catalog service over HTTP with JSON bodies.
// All calls go through a shared circuit breaker so a flapping service is cut
// off quickly instead of keeping the UI waiting on every interaction.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient creates a gateway client for the service at baseURL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "catalog-service",
		MaxRequests: 5,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.8
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger,
	}
}

// ListLessons fetches the full catalog
func (c *Client) ListLessons(ctx context.Context) ([]*catalog.Lesson, error) {
	var dtos []lessonDTO
	if err := c.do(ctx, http.MethodGet, "/lessons", nil, &dtos); err != nil {
		return nil, err
	}
	return c.toLessons("list lessons", dtos)
}

// SearchLessons asks the service for a server-side filtered catalog.
// Any failure degrades to an empty result set instead of an error.
func (c *Client) SearchLessons(ctx context.Context, query string) []*catalog.Lesson {
	path := "/search?query=" + url.QueryEscape(query)

	var dtos []lessonDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		c.logger.Warn("search failed, returning no results",
			zap.String("query", query),
			zap.Error(err),
		)
		return []*catalog.Lesson{}
	}

	lessons, err := c.toLessons("search lessons", dtos)
	if err != nil {
		c.logger.Warn("search returned malformed lessons, returning no results",
			zap.String("query", query),
			zap.Error(err),
		)
		return []*catalog.Lesson{}
	}
	return lessons
}

// SubmitOrder posts an order and returns the service's confirmation
func (c *Client) SubmitOrder(ctx context.Context, order ports.Order) (*ports.OrderConfirmation, error) {
	body := orderDTO{
		Name:       order.CustomerName,
		Phone:      order.CustomerPhone,
		LessonIDs:  order.LessonIDs,
		Quantities: order.Quantities,
		TotalPrice: order.TotalPrice.InexactFloat64(),
	}

	var confirmation confirmationDTO
	if err := c.do(ctx, http.MethodPost, "/orders", body, &confirmation); err != nil {
		return nil, pkgerrors.NewOrderSubmissionError(err)
	}

	return &ports.OrderConfirmation{
		OrderID: confirmation.OrderID,
		Message: confirmation.Message,
	}, nil
}

// UpdateSpaces pushes a lesson's remaining spaces. Best-effort: a failure is
// logged and swallowed so checkout completion never depends on it.
func (c *Client) UpdateSpaces(ctx context.Context, lessonID string, spaces int) {
	path := "/lessons/" + url.PathEscape(lessonID)
	if err := c.do(ctx, http.MethodPut, path, spacesDTO{Spaces: spaces}, nil); err != nil {
		syncErr := pkgerrors.NewSpaceSyncError(lessonID, err)
		c.logger.Warn("space sync failed",
			zap.String("lessonID", lessonID),
			zap.Int("spaces", spaces),
			zap.Error(syncErr),
		)
	}
}

// do performs one HTTP round trip through the circuit breaker, decoding a
// JSON response into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	operation := method + " " + path

	_, err := c.breaker.Execute(func() (interface{}, error) {
		var reader io.Reader
		if body != nil {
			encoded, err := json.Marshal(body)
			if err != nil {
				return nil, pkgerrors.NewInternalError("encoding request body").WithCause(err)
			}
			reader = bytes.NewReader(encoded)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, pkgerrors.NewNetworkError(operation, err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, pkgerrors.NewNetworkError(operation, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, pkgerrors.NewNetworkError(operation,
				fmt.Errorf("unexpected status %d", resp.StatusCode))
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return nil, pkgerrors.NewDecodeError(operation, err)
			}
		}
		return nil, nil
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return pkgerrors.NewNetworkError(operation, err)
	}
	return err
}

// toLessons maps wire lessons to domain lessons, prefixing relative image
// paths with the service's static asset base. The service owns its images;
// presentation code never sees an unprefixed path.
func (c *Client) toLessons(operation string, dtos []lessonDTO) ([]*catalog.Lesson, error) {
	lessons := make([]*catalog.Lesson, 0, len(dtos))
	for _, dto := range dtos {
		image := dto.Image
		if image != "" && !strings.HasPrefix(image, "http") {
			image = c.baseURL + "/images/" + image
		}
		lesson, err := catalog.ReconstructLesson(dto.ID, dto.Subject, dto.Location, dto.Price, dto.Spaces, image, dto.Rating)
		if err != nil {
			return nil, pkgerrors.NewDecodeError(operation, err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}
