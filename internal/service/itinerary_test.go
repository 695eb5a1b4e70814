package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderplan/trip-planner/backend/internal/domain"
	"github.com/wanderplan/trip-planner/backend/internal/repo"
	"github.com/wanderplan/trip-planner/backend/internal/service"
)

// ---- mocks -----------------------------------------------------------------

// mockItineraryRepo is a hand-written test double for repo.ItineraryRepo.
// Each method is a function field — set only the ones your test needs.
type mockItineraryRepo struct {
	create         func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)
	getByID        func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	list           func(ctx context.Context) ([]domain.Summary, error)
	replaceContent func(ctx context.Context, id uuid.UUID, c domain.Content) (domain.Itinerary, error)
	delete         func(ctx context.Context, id uuid.UUID) error

	createCalls  int
	replaceCalls int
}

func (m *mockItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	m.createCalls++
	return m.create(ctx, it)
}
func (m *mockItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryRepo) List(ctx context.Context) ([]domain.Summary, error) {
	return m.list(ctx)
}
func (m *mockItineraryRepo) ReplaceContent(ctx context.Context, id uuid.UUID, c domain.Content) (domain.Itinerary, error) {
	m.replaceCalls++
	return m.replaceContent(ctx, id, c)
}
func (m *mockItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockItineraryRepo must satisfy repo.ItineraryRepo.
var _ repo.ItineraryRepo = (*mockItineraryRepo)(nil)

// mockGenerator is a hand-written test double for service.Generator.
// Call counts let tests assert that no collaborator call was made.
type mockGenerator struct {
	generate func(ctx context.Context, destination string, start, end time.Time, interests []string) (domain.Content, error)
	adjust   func(ctx context.Context, current domain.Content, instruction string) (domain.Content, error)

	generateCalls int
	adjustCalls   int
}

func (m *mockGenerator) GenerateItinerary(ctx context.Context, destination string, start, end time.Time, interests []string) (domain.Content, error) {
	m.generateCalls++
	return m.generate(ctx, destination, start, end, interests)
}
func (m *mockGenerator) AdjustItinerary(ctx context.Context, current domain.Content, instruction string) (domain.Content, error) {
	m.adjustCalls++
	return m.adjust(ctx, current, instruction)
}

var _ service.Generator = (*mockGenerator)(nil)

// ---- helpers ---------------------------------------------------------------

var (
	lisbonStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	lisbonEnd   = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
)

func lisbonRequest() domain.GenerateRequest {
	return domain.GenerateRequest{
		Destination: "Lisbon",
		StartDate:   lisbonStart,
		EndDate:     lisbonEnd,
		Interests:   []string{"food", "history"},
	}
}

// validContent builds a structurally valid plan of n days starting at start.
func validContent(start time.Time, n int) domain.Content {
	var c domain.Content
	for i := 0; i < n; i++ {
		c.Days = append(c.Days, domain.Day{
			Day:        i + 1,
			Date:       start.AddDate(0, 0, i).Format(domain.DateLayout),
			Activities: []string{fmt.Sprintf("Day %d: explore the city", i+1)},
		})
	}
	return c
}

// passthroughCreate returns a create func that echoes its input with
// server-assigned fields filled in.
func passthroughCreate(id uuid.UUID, at time.Time) func(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return func(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
		it.ID = id
		it.CreatedAt = at
		it.UpdatedAt = at
		return it, nil
	}
}

func newService(r repo.ItineraryRepo, g service.Generator) *service.ItineraryService {
	return service.NewItineraryService(r, g, 0)
}

// ---- Generate --------------------------------------------------------------

func TestItineraryService_Generate_OK(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC()

	gen := &mockGenerator{
		generate: func(_ context.Context, dest string, start, end time.Time, interests []string) (domain.Content, error) {
			assert.Equal(t, "Lisbon", dest)
			assert.Equal(t, []string{"food", "history"}, interests)
			return validContent(start, domain.DaySpan(start, end)), nil
		},
	}
	r := &mockItineraryRepo{create: passthroughCreate(id, now)}

	got, err := newService(r, gen).Generate(context.Background(), lisbonRequest())

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Lisbon", got.Destination)
	assert.Equal(t, []string{"food", "history"}, got.Interests)

	// A 3-day span yields exactly 3 day entries, numbered 1..3, dated
	// start_date + (i-1).
	require.Len(t, got.Content.Days, 3)
	for i, d := range got.Content.Days {
		assert.Equal(t, i+1, d.Day)
		assert.Equal(t, lisbonStart.AddDate(0, 0, i).Format(domain.DateLayout), d.Date)
		assert.NotEmpty(t, d.Activities)
	}
}

func TestItineraryService_Generate_NormalizesInterests(t *testing.T) {
	gen := &mockGenerator{
		generate: func(_ context.Context, _ string, start, end time.Time, interests []string) (domain.Content, error) {
			assert.Equal(t, []string{"food", "history"}, interests, "collaborator should see normalized tags")
			return validContent(start, domain.DaySpan(start, end)), nil
		},
	}
	r := &mockItineraryRepo{create: passthroughCreate(uuid.New(), time.Now())}

	req := lisbonRequest()
	req.Interests = []string{" Food ", "HISTORY", "food"}

	got, err := newService(r, gen).Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, []string{"food", "history"}, got.Interests)
}

func TestItineraryService_Generate_RejectsUnknownInterest(t *testing.T) {
	gen := &mockGenerator{}
	r := &mockItineraryRepo{}

	req := lisbonRequest()
	req.Interests = []string{"skydiving"}

	_, err := newService(r, gen).Generate(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, gen.generateCalls, "no collaborator call for an invalid request")
	assert.Zero(t, r.createCalls)
}

func TestItineraryService_Generate_RequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *domain.GenerateRequest)
	}{
		{"blank destination", func(req *domain.GenerateRequest) { req.Destination = "   " }},
		{"missing start date", func(req *domain.GenerateRequest) { req.StartDate = time.Time{} }},
		{"missing end date", func(req *domain.GenerateRequest) { req.EndDate = time.Time{} }},
		{"end before start", func(req *domain.GenerateRequest) {
			req.StartDate, req.EndDate = req.EndDate, req.StartDate
		}},
		{"no interests", func(req *domain.GenerateRequest) { req.Interests = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &mockGenerator{}
			req := lisbonRequest()
			tt.mutate(&req)

			_, err := newService(&mockItineraryRepo{}, gen).Generate(context.Background(), req)

			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, gen.generateCalls)
		})
	}
}

func TestItineraryService_Generate_CollaboratorFailure(t *testing.T) {
	gen := &mockGenerator{
		generate: func(context.Context, string, time.Time, time.Time, []string) (domain.Content, error) {
			return domain.Content{}, errors.New("model unreachable")
		},
	}
	r := &mockItineraryRepo{}

	_, err := newService(r, gen).Generate(context.Background(), lisbonRequest())

	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.Zero(t, r.createCalls, "no record may be written when generation fails")
}

func TestItineraryService_Generate_InvalidCollaboratorOutput(t *testing.T) {
	gen := &mockGenerator{
		generate: func(_ context.Context, _ string, start, _ time.Time, _ []string) (domain.Content, error) {
			// Two days for a three-day span.
			return validContent(start, 2), nil
		},
	}
	r := &mockItineraryRepo{}

	_, err := newService(r, gen).Generate(context.Background(), lisbonRequest())

	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.Contains(t, err.Error(), "validation")
	assert.Zero(t, r.createCalls)
}

func TestItineraryService_Generate_Timeout(t *testing.T) {
	gen := &mockGenerator{
		generate: func(ctx context.Context, _ string, _, _ time.Time, _ []string) (domain.Content, error) {
			// Simulate a collaborator that never answers within the deadline.
			<-ctx.Done()
			return domain.Content{}, ctx.Err()
		},
	}
	r := &mockItineraryRepo{}
	svc := service.NewItineraryService(r, gen, 10*time.Millisecond)

	_, err := svc.Generate(context.Background(), lisbonRequest())

	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.Zero(t, r.createCalls)
}

// ---- Save ------------------------------------------------------------------

func TestItineraryService_Save_OK(t *testing.T) {
	id := uuid.New()
	r := &mockItineraryRepo{create: passthroughCreate(id, time.Now())}

	req := domain.SaveRequest{
		GenerateRequest: lisbonRequest(),
		Content:         validContent(lisbonStart, 3),
	}

	got, err := newService(r, &mockGenerator{}).Save(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, req.Content, got.Content)
}

func TestItineraryService_Save_InvalidContent(t *testing.T) {
	r := &mockItineraryRepo{}

	req := domain.SaveRequest{
		GenerateRequest: lisbonRequest(),
		Content:         validContent(lisbonStart, 2), // wrong day count
	}

	_, err := newService(r, &mockGenerator{}).Save(context.Background(), req)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, r.createCalls)
}

// ---- GetByID / List / Delete -----------------------------------------------

func TestItineraryService_GetByID_NotFound(t *testing.T) {
	r := &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Itinerary, error) {
			return domain.Itinerary{}, domain.ErrNotFound
		},
	}

	_, err := newService(r, &mockGenerator{}).GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_List_NeverNil(t *testing.T) {
	r := &mockItineraryRepo{
		list: func(context.Context) ([]domain.Summary, error) { return nil, nil },
	}

	got, err := newService(r, &mockGenerator{}).List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestItineraryService_Delete_NotFound(t *testing.T) {
	r := &mockItineraryRepo{
		delete: func(context.Context, uuid.UUID) error { return domain.ErrNotFound },
	}

	err := newService(r, &mockGenerator{}).Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- Adjust ----------------------------------------------------------------

// storedLisbon returns a persisted-looking record for adjustment tests.
func storedLisbon(id uuid.UUID) domain.Itinerary {
	created := time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)
	return domain.Itinerary{
		ID:          id,
		Destination: "Lisbon",
		StartDate:   lisbonStart,
		EndDate:     lisbonEnd,
		Interests:   []string{"food", "history"},
		Content:     validContent(lisbonStart, 3),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func TestItineraryService_Adjust_OK(t *testing.T) {
	id := uuid.New()
	stored := storedLisbon(id)

	replacement := validContent(lisbonStart, 3)
	replacement.Days[0].Activities = []string{"Morning: free walking tour"}
	replacement.TotalEstimatedCost = "€150-250"

	gen := &mockGenerator{
		adjust: func(_ context.Context, current domain.Content, instruction string) (domain.Content, error) {
			assert.Equal(t, stored.Content, current, "collaborator must receive the full current plan")
			assert.Equal(t, "make it more budget-friendly", instruction)
			return replacement, nil
		},
	}
	r := &mockItineraryRepo{
		getByID: func(_ context.Context, gotID uuid.UUID) (domain.Itinerary, error) {
			assert.Equal(t, id, gotID)
			return stored, nil
		},
		replaceContent: func(_ context.Context, gotID uuid.UUID, c domain.Content) (domain.Itinerary, error) {
			assert.Equal(t, id, gotID)
			assert.Equal(t, replacement, c)
			updated := stored
			updated.Content = c
			updated.UpdatedAt = stored.UpdatedAt.Add(time.Minute)
			return updated, nil
		},
	}

	got, err := newService(r, gen).Adjust(context.Background(), id, "make it more budget-friendly")

	require.NoError(t, err)
	assert.Equal(t, replacement, got.Content)

	// Identity fields survive any adjustment.
	assert.Equal(t, stored.Destination, got.Destination)
	assert.True(t, got.StartDate.Equal(stored.StartDate))
	assert.True(t, got.EndDate.Equal(stored.EndDate))
	assert.Equal(t, stored.Interests, got.Interests)
	assert.True(t, got.UpdatedAt.After(stored.UpdatedAt), "updated_at must be strictly newer")

	// The replacement still covers the same three dates.
	require.Len(t, got.Content.Days, 3)
	for i, d := range got.Content.Days {
		assert.Equal(t, lisbonStart.AddDate(0, 0, i).Format(domain.DateLayout), d.Date)
	}
}

func TestItineraryService_Adjust_BlankInstruction(t *testing.T) {
	gen := &mockGenerator{}
	r := &mockItineraryRepo{}

	for _, instruction := range []string{"", "   ", "\n\t"} {
		_, err := newService(r, gen).Adjust(context.Background(), uuid.New(), instruction)

		assert.ErrorIs(t, err, domain.ErrAdjustment)
	}
	assert.Zero(t, gen.adjustCalls, "blank instructions are rejected before the collaborator is invoked")
}

func TestItineraryService_Adjust_NotFound(t *testing.T) {
	r := &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Itinerary, error) {
			return domain.Itinerary{}, domain.ErrNotFound
		},
	}

	_, err := newService(r, &mockGenerator{}).Adjust(context.Background(), uuid.New(), "shorter days please")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItineraryService_Adjust_CollaboratorFailure(t *testing.T) {
	id := uuid.New()
	gen := &mockGenerator{
		adjust: func(context.Context, domain.Content, string) (domain.Content, error) {
			return domain.Content{}, errors.New("model refused")
		},
	}
	r := &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Itinerary, error) {
			return storedLisbon(id), nil
		},
	}

	_, err := newService(r, gen).Adjust(context.Background(), id, "add more museums")

	assert.ErrorIs(t, err, domain.ErrGeneration)
	assert.Zero(t, r.replaceCalls, "failed adjustment must not touch the store")
}

func TestItineraryService_Adjust_Atomic_InvalidReplacement(t *testing.T) {
	id := uuid.New()
	gen := &mockGenerator{
		adjust: func(context.Context, domain.Content, string) (domain.Content, error) {
			// Wrong day count: the model dropped a day.
			return validContent(lisbonStart, 2), nil
		},
	}
	r := &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Itinerary, error) {
			return storedLisbon(id), nil
		},
	}

	_, err := newService(r, gen).Adjust(context.Background(), id, "make it more budget-friendly")

	assert.ErrorIs(t, err, domain.ErrAdjustment)
	assert.Zero(t, r.replaceCalls, "an invalid replacement must never reach the store")
}

func TestItineraryService_Adjust_Atomic_ShiftedDates(t *testing.T) {
	id := uuid.New()
	gen := &mockGenerator{
		adjust: func(context.Context, domain.Content, string) (domain.Content, error) {
			// Right count, wrong dates: the model moved the trip by a day.
			return validContent(lisbonStart.AddDate(0, 0, 1), 3), nil
		},
	}
	r := &mockItineraryRepo{
		getByID: func(context.Context, uuid.UUID) (domain.Itinerary, error) {
			return storedLisbon(id), nil
		},
	}

	_, err := newService(r, gen).Adjust(context.Background(), id, "push everything back a day")

	assert.ErrorIs(t, err, domain.ErrAdjustment)
	assert.Zero(t, r.replaceCalls)
}
