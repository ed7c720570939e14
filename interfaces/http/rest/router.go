package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"storefront/infrastructure/persistence/memory"
	"storefront/interfaces/http/rest/handlers"
	"storefront/interfaces/http/rest/middleware"
	"storefront/pkg/common"
	pkgerrors "storefront/pkg/errors"
)

// Router creates and configures the catalog service HTTP router
type Router struct {
	repo       *memory.LessonRepository
	logger     *zap.Logger
	imagesDir  string
	enableCORS bool
}

// NewRouter creates a new router instance
func NewRouter(repo *memory.LessonRepository, imagesDir string, enableCORS bool, logger *zap.Logger) *Router {
	return &Router{
		repo:       repo,
		logger:     logger,
		imagesDir:  imagesDir,
		enableCORS: enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// The storefront is a browser app served from a different origin
	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, false)
	lessonHandler := handlers.NewLessonHandler(rt.repo, errorHandler, rt.logger)
	orderHandler := handlers.NewOrderHandler(rt.repo, errorHandler, rt.logger)

	router.Get("/lessons", lessonHandler.List)
	router.Put("/lessons/{lessonID}", lessonHandler.UpdateSpaces)
	router.Get("/search", lessonHandler.Search)
	router.Post("/orders", orderHandler.Create)

	// Lesson images referenced by the catalog's relative image paths
	fileServer := http.FileServer(http.Dir(rt.imagesDir))
	router.Handle("/images/*", http.StripPrefix("/images/", fileServer))

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
