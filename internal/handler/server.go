// Package handler implements the HTTP handlers for the trip planner API.
// Handlers decode requests, call the service layer, and map domain errors to
// HTTP statuses. No business logic lives here.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wanderplan/trip-planner/backend/internal/domain"
	"github.com/wanderplan/trip-planner/backend/spec"
)

// ItineraryServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database, the service layer, or
// the generation collaborator.
type ItineraryServicer interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (domain.Itinerary, error)
	Save(ctx context.Context, req domain.SaveRequest) (domain.Itinerary, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	List(ctx context.Context) ([]domain.Summary, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Adjust(ctx context.Context, id uuid.UUID, instruction string) (domain.Itinerary, error)
}

// Server holds the handler dependencies. Methods are split across files
// (itinerary.go, health.go) but all operate on this struct.
type Server struct {
	itineraries ItineraryServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(itineraries ItineraryServicer) *Server {
	return &Server{itineraries: itineraries}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", s.handleOpenAPI)

	r.Route("/api/itinerary", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Get("/", s.handleList)
		r.Post("/", s.handleSave)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/adjust", s.handleAdjust)
		})
	})

	return r
}

// handleOpenAPI serves the embedded OpenAPI document.
func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(spec.OpenAPI)
}
