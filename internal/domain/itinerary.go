// Package domain contains the core data types for the trip planner API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler, genai).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is the persisted record for one planned trip.
// Destination, StartDate, EndDate, and Interests are fixed at creation and
// never change afterwards; only Content (and UpdatedAt with it) is replaced,
// wholesale, by a successful adjustment.
type Itinerary struct {
	ID          uuid.UUID
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   []string
	Content     Content
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Summary is the list projection of an Itinerary: everything except the plan
// itself. Days is the number of day entries in the stored plan.
type Summary struct {
	ID          uuid.UUID
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   []string
	Days        int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GenerateRequest carries a validated-later generation request from the HTTP
// layer to the service layer.
type GenerateRequest struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Interests   []string
}

// SaveRequest carries a client-supplied itinerary to be persisted without
// involving the generation collaborator.
type SaveRequest struct {
	GenerateRequest
	Content Content
}

// DaySpan returns the inclusive number of calendar days between start and end.
// Both values are treated as bare dates; time-of-day is ignored.
func DaySpan(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
