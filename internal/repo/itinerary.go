// Package repo contains all database access logic for the trip planner API.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/wanderplan/trip-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ItineraryRepo defines the persistence operations for itinerary records.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type ItineraryRepo interface {
	// Create inserts a new itinerary and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated). Callers never
	// supply an id.
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID retrieves a single itinerary by its UUID primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)

	// List returns summaries of all itineraries ordered by created_at
	// descending (most recent trip first). The plan itself is not loaded.
	List(ctx context.Context) ([]domain.Summary, error)

	// ReplaceContent overwrites itinerary_data and bumps updated_at, leaving
	// every other column untouched. Returns the full updated record, or
	// domain.ErrNotFound if no record with that ID exists.
	ReplaceContent(ctx context.Context, id uuid.UUID, content domain.Content) (domain.Itinerary, error)

	// Delete removes an itinerary by ID. Returns domain.ErrNotFound if it
	// does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgItineraryRepo is the Postgres implementation of ItineraryRepo.
type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db
// connection. In production pass *pgxpool.Pool; in tests pass a pgx.Tx for
// rollback isolation.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `id, destination, start_date, end_date, interests, itinerary_data, created_at, updated_at`

// Create inserts a new itinerary row and returns the full persisted record.
func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (destination, start_date, end_date, interests, itinerary_data)
		VALUES (@destination, @start_date, @end_date, @interests, @itinerary_data)
		RETURNING ` + itineraryColumns

	interests, content, err := encodeJSON(it)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}

	args := pgx.NamedArgs{
		"destination":    it.Destination,
		"start_date":     it.StartDate,
		"end_date":       it.EndDate,
		"interests":      interests,
		"itinerary_data": content,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an itinerary by primary key.
func (r *pgItineraryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns summaries ordered by created_at descending.
// The day count is computed in SQL from the stored plan so the plan JSON never
// leaves the database for a list call.
func (r *pgItineraryRepo) List(ctx context.Context) ([]domain.Summary, error) {
	const q = `
		SELECT id, destination, start_date, end_date, interests,
		       coalesce(jsonb_array_length(itinerary_data->'itinerary'), 0),
		       created_at, updated_at
		FROM itineraries
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: %w", err)
	}
	defer rows.Close()

	var summaries []domain.Summary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.List: scan: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.List: rows: %w", err)
	}

	return summaries, nil
}

// ReplaceContent swaps in a new plan and bumps updated_at.
// All other columns are immutable after creation, so they are not touched.
func (r *pgItineraryRepo) ReplaceContent(ctx context.Context, id uuid.UUID, content domain.Content) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET itinerary_data = @itinerary_data,
		    updated_at     = clock_timestamp()
		WHERE id = @id
		RETURNING ` + itineraryColumns

	raw, err := json.Marshal(content)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.ReplaceContent: marshal: %w", err)
	}

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "itinerary_data": raw})
	result, err := scanItinerary(row)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.ReplaceContent: %w", err)
	}
	return result, nil
}

// Delete removes an itinerary by primary key.
func (r *pgItineraryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan helpers
// to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// encodeJSON marshals the two jsonb columns of an itinerary.
func encodeJSON(it domain.Itinerary) (interests, content []byte, err error) {
	interests, err = json.Marshal(it.Interests)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal interests: %w", err)
	}
	content, err = json.Marshal(it.Content)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal itinerary_data: %w", err)
	}
	return interests, content, nil
}

// scanItinerary maps a single database row into a domain.Itinerary.
// It handles the UUID, date, and jsonb conversions.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it        domain.Itinerary
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		interests []byte
		content   []byte
	)

	err := s.Scan(&id, &it.Destination, &startDate, &endDate, &interests, &content, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}

	it.ID = uuid.UUID(id.Bytes)
	it.StartDate = startDate.Time
	it.EndDate = endDate.Time

	if err := json.Unmarshal(interests, &it.Interests); err != nil {
		return domain.Itinerary{}, fmt.Errorf("unmarshal interests: %w", err)
	}
	if err := json.Unmarshal(content, &it.Content); err != nil {
		return domain.Itinerary{}, fmt.Errorf("unmarshal itinerary_data: %w", err)
	}

	return it, nil
}

// scanSummary maps a list row into a domain.Summary.
func scanSummary(s scanner) (domain.Summary, error) {
	var (
		sum       domain.Summary
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
		interests []byte
	)

	err := s.Scan(&id, &sum.Destination, &startDate, &endDate, &interests, &sum.Days, &sum.CreatedAt, &sum.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Summary{}, domain.ErrNotFound
		}
		return domain.Summary{}, err
	}

	sum.ID = uuid.UUID(id.Bytes)
	sum.StartDate = startDate.Time
	sum.EndDate = endDate.Time

	if err := json.Unmarshal(interests, &sum.Interests); err != nil {
		return domain.Summary{}, fmt.Errorf("unmarshal interests: %w", err)
	}

	return sum, nil
}
