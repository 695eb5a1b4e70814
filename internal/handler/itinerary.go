package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/wanderplan/trip-planner/backend/internal/domain"
)

// --- wire types -------------------------------------------------------------
// Dates cross the wire as YYYY-MM-DD strings; openapi_types.Date enforces the
// format on both decode and encode.

type generateRequest struct {
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Interests   []string           `json:"interests"`
}

type saveRequest struct {
	generateRequest
	ItineraryData domain.Content `json:"itinerary_data"`
}

type adjustRequest struct {
	Adjustment string `json:"adjustment"`
}

type itineraryResponse struct {
	ID            uuid.UUID          `json:"id"`
	Destination   string             `json:"destination"`
	StartDate     openapi_types.Date `json:"start_date"`
	EndDate       openapi_types.Date `json:"end_date"`
	Interests     []string           `json:"interests"`
	ItineraryData domain.Content     `json:"itinerary_data"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type summaryResponse struct {
	ID          uuid.UUID          `json:"id"`
	Destination string             `json:"destination"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Interests   []string           `json:"interests"`
	Days        int                `json:"days"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

type listResponse struct {
	Data []summaryResponse `json:"data"`
}

// --- handlers ---------------------------------------------------------------

// handleGenerate handles POST /api/itinerary/generate.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var body generateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", "invalid request body: "+err.Error()))
		return
	}

	created, err := s.itineraries.Generate(r.Context(), body.toDomain())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// handleList handles GET /api/itinerary.
// Records come back ordered by created_at descending; the frontend depends on
// that ordering.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.itineraries.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	data := make([]summaryResponse, len(summaries))
	for i, sum := range summaries {
		data[i] = summaryToResponse(sum)
	}
	writeJSON(w, http.StatusOK, listResponse{Data: data})
}

// handleGet handles GET /api/itinerary/{id}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	it, err := s.itineraries.GetByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// handleSave handles POST /api/itinerary: persist a client-supplied itinerary.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var body saveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", "invalid request body: "+err.Error()))
		return
	}

	created, err := s.itineraries.Save(r.Context(), domain.SaveRequest{
		GenerateRequest: body.toDomain(),
		Content:         body.ItineraryData,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// handleDelete handles DELETE /api/itinerary/{id}.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.itineraries.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleAdjust handles POST /api/itinerary/{id}/adjust.
func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var body adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", "invalid request body: "+err.Error()))
		return
	}

	updated, err := s.itineraries.Adjust(r.Context(), id, body.Adjustment)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// --- helpers ----------------------------------------------------------------

// pathID parses the {id} path parameter. A malformed UUID cannot name an
// existing record, so it is reported as 404 rather than 400.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "itinerary not found"))
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b generateRequest) toDomain() domain.GenerateRequest {
	return domain.GenerateRequest{
		Destination: b.Destination,
		StartDate:   b.StartDate.Time,
		EndDate:     b.EndDate.Time,
		Interests:   b.Interests,
	}
}

func itineraryToResponse(it domain.Itinerary) itineraryResponse {
	return itineraryResponse{
		ID:            it.ID,
		Destination:   it.Destination,
		StartDate:     openapi_types.Date{Time: it.StartDate},
		EndDate:       openapi_types.Date{Time: it.EndDate},
		Interests:     it.Interests,
		ItineraryData: it.Content,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

func summaryToResponse(s domain.Summary) summaryResponse {
	return summaryResponse{
		ID:          s.ID,
		Destination: s.Destination,
		StartDate:   openapi_types.Date{Time: s.StartDate},
		EndDate:     openapi_types.Date{Time: s.EndDate},
		Interests:   s.Interests,
		Days:        s.Days,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
