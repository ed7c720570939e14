package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"storefront/domain/catalog"
	"storefront/infrastructure/persistence/memory"
	"storefront/pkg/common"
	pkgerrors "storefront/pkg/errors"
)

var validate = validator.New()

// LessonDTO is the wire shape of a catalog item
type LessonDTO struct {
	ID       string  `json:"id"`
	Subject  string  `json:"subject"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Spaces   int     `json:"spaces"`
	Image    string  `json:"image"`
	Rating   float64 `json:"rating,omitempty"`
}

// UpdateSpacesRequest is the body of PUT /lessons/{lessonID}
type UpdateSpacesRequest struct {
	Spaces *int `json:"spaces" validate:"required,gte=0"`
}

// LessonHandler handles lesson-related HTTP requests
type LessonHandler struct {
	repo   *memory.LessonRepository
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(repo *memory.LessonRepository, errHandler *pkgerrors.ErrorHandler, logger *zap.Logger) *LessonHandler {
	return &LessonHandler{repo: repo, errors: errHandler, logger: logger}
}

// List handles GET /lessons
func (h *LessonHandler) List(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, toDTOs(h.repo.List()))
}

// Search handles GET /search?query=
func (h *LessonHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	common.RespondJSON(w, http.StatusOK, toDTOs(h.repo.Search(query)))
}

// UpdateSpaces handles PUT /lessons/{lessonID}
func (h *LessonHandler) UpdateSpaces(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "lessonID")

	var req UpdateSpacesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Handle(w, r, decodeError(err))
		return
	}
	if err := validate.Struct(req); err != nil {
		h.errors.Handle(w, r, validationError(err))
		return
	}

	// Repo errors are typed: unknown id maps to 404, negative spaces to 400
	if err := h.repo.UpdateSpaces(lessonID, *req.Spaces); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Info("lesson spaces updated",
		zap.String("lessonID", lessonID),
		zap.Int("spaces", *req.Spaces),
	)
	common.RespondJSON(w, http.StatusOK, nil)
}

func toDTOs(lessons []*catalog.Lesson) []LessonDTO {
	dtos := make([]LessonDTO, len(lessons))
	for i, l := range lessons {
		dtos[i] = LessonDTO{
			ID:       l.ID(),
			Subject:  l.Subject(),
			Location: l.Location(),
			Price:    l.Price().InexactFloat64(),
			Spaces:   l.Spaces(),
			Image:    l.Image(),
			Rating:   l.Rating(),
		}
	}
	return dtos
}

// decodeError wraps a JSON decoding failure as a 400
func decodeError(err error) *pkgerrors.AppError {
	return pkgerrors.NewValidationError("invalid request body").
		WithCode("INVALID_BODY").
		WithCause(err)
}

// validationError wraps a struct validation failure as a 400, with the
// offending fields and their failed rules in the details map.
func validationError(err error) *pkgerrors.AppError {
	appErr := pkgerrors.NewValidationError("request validation failed").WithCause(err)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make(map[string]interface{}, len(fieldErrs))
		for _, fe := range fieldErrs {
			details[fe.Field()] = fe.Tag()
		}
		appErr = appErr.WithDetails(details)
	}
	return appErr
}
