// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce the itinerary invariants, and orchestrate
// repo and collaborator calls. No SQL and no prompts live here — services
// depend on the repo and generator interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wanderplan/trip-planner/backend/internal/domain"
	"github.com/wanderplan/trip-planner/backend/internal/repo"
)

// Generator defines the generation-collaborator operations the service depends
// on. Satisfied by *genai.Gemini; tests inject a mock. Each call is expected to
// hit the model exactly once — the service never retries.
type Generator interface {
	GenerateItinerary(ctx context.Context, destination string, start, end time.Time, interests []string) (domain.Content, error)
	AdjustItinerary(ctx context.Context, current domain.Content, instruction string) (domain.Content, error)
}

// ItineraryService implements the itinerary lifecycle: generate, save, get,
// list, delete, adjust. Each operation is a single logical transaction from
// the caller's perspective — on any failure the store is left unchanged.
//
// The service holds no per-record state, so concurrent operations on different
// records are independent. Concurrent adjustments to the same record are
// last-writer-wins; see Adjust.
type ItineraryService struct {
	repo        repo.ItineraryRepo
	gen         Generator
	callTimeout time.Duration
}

// NewItineraryService constructs an ItineraryService. callTimeout bounds each
// collaborator call; zero means no bound beyond the caller's context.
func NewItineraryService(r repo.ItineraryRepo, gen Generator, callTimeout time.Duration) *ItineraryService {
	return &ItineraryService{repo: r, gen: gen, callTimeout: callTimeout}
}

// Generate produces a fresh itinerary via the collaborator, validates it, and
// persists it. The request is validated before the collaborator is invoked, so
// a bad request never costs a model call. Returns domain.ErrValidation for bad
// requests and domain.ErrGeneration when the collaborator fails or returns a
// plan that violates a structural invariant; no record is written on failure.
func (s *ItineraryService) Generate(ctx context.Context, req domain.GenerateRequest) (domain.Itinerary, error) {
	interests, err := validateRequest(req)
	if err != nil {
		return domain.Itinerary{}, err
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	content, err := s.gen.GenerateItinerary(callCtx, req.Destination, req.StartDate, req.EndDate, interests)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("%w: collaborator: %v", domain.ErrGeneration, err)
	}

	if err := domain.ValidateContent(content, req.StartDate, req.EndDate); err != nil {
		return domain.Itinerary{}, fmt.Errorf("%w: validation: %v", domain.ErrGeneration, err)
	}

	result, err := s.repo.Create(ctx, domain.Itinerary{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Interests:   interests,
		Content:     content,
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Generate: %w", err)
	}
	return result, nil
}

// Save persists a client-supplied itinerary without involving the
// collaborator. The content is held to the same invariants as generated
// content; violations are domain.ErrValidation (the client, not the
// collaborator, is at fault here).
func (s *ItineraryService) Save(ctx context.Context, req domain.SaveRequest) (domain.Itinerary, error) {
	interests, err := validateRequest(req.GenerateRequest)
	if err != nil {
		return domain.Itinerary{}, err
	}

	if err := domain.ValidateContent(req.Content, req.StartDate, req.EndDate); err != nil {
		return domain.Itinerary{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	result, err := s.repo.Create(ctx, domain.Itinerary{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Interests:   interests,
		Content:     req.Content,
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Save: %w", err)
	}
	return result, nil
}

// GetByID returns a single itinerary by ID.
func (s *ItineraryService) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.GetByID: %w", err)
	}
	return result, nil
}

// List returns summaries of all itineraries, most recently created first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) List(ctx context.Context) ([]domain.Summary, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	if summaries == nil {
		return []domain.Summary{}, nil
	}
	return summaries, nil
}

// Delete removes an itinerary by ID.
func (s *ItineraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}
	return nil
}

// Adjust applies a free-text instruction to an existing itinerary by asking
// the collaborator for a complete replacement plan, validating it against the
// original record's date span, and storing it. Acceptance is all-or-nothing:
// on any failure the stored record is untouched. Destination, dates, and
// interests never change, whatever the instruction says.
//
// Blank instructions fail with domain.ErrAdjustment before any fetch or model
// call. A collaborator failure is domain.ErrGeneration; a replacement that
// fails validation is domain.ErrAdjustment.
//
// Adjust is read-modify-write without a conditional store: two concurrent
// adjustments to the same record are last-writer-wins, and one may silently
// discard the other. Accepted limitation — each accepted write is still a
// fully validated plan for the record's span.
func (s *ItineraryService) Adjust(ctx context.Context, id uuid.UUID, instruction string) (domain.Itinerary, error) {
	if strings.TrimSpace(instruction) == "" {
		return domain.Itinerary{}, fmt.Errorf("%w: adjustment instruction is required", domain.ErrAdjustment)
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Adjust: %w", err)
	}

	callCtx, cancel := s.callContext(ctx)
	defer cancel()

	replacement, err := s.gen.AdjustItinerary(callCtx, current.Content, instruction)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("%w: collaborator: %v", domain.ErrGeneration, err)
	}

	if err := domain.ValidateContent(replacement, current.StartDate, current.EndDate); err != nil {
		return domain.Itinerary{}, fmt.Errorf("%w: %v", domain.ErrAdjustment, err)
	}

	result, err := s.repo.ReplaceContent(ctx, id, replacement)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Adjust: %w", err)
	}
	return result, nil
}

// callContext bounds a collaborator call with the configured timeout.
func (s *ItineraryService) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.callTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.callTimeout)
}

// validateRequest enforces the request rules shared by Generate and Save:
//   - destination must be non-empty (whitespace-only is rejected)
//   - both dates must be present and end must not be before start
//   - interests must be a non-empty subset of the recognized vocabulary
//
// Returns the normalized interest set on success.
func validateRequest(req domain.GenerateRequest) ([]string, error) {
	if strings.TrimSpace(req.Destination) == "" {
		return nil, fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if req.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: end_date is required", domain.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}

	interests, err := domain.NormalizeInterests(req.Interests)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return interests, nil
}
