package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for all calendar dates, both in the HTTP API
// and inside the plan JSON. Timezone-naive by design.
const DateLayout = "2006-01-02"

// Content is the structured day-by-day plan embedded in an Itinerary.
// It is produced by the generation collaborator, validated by ValidateContent,
// and always replaced as a whole — never patched field by field.
//
// The JSON field names match the collaborator's wire format. Any field the
// collaborator echoes back that is not declared here (interests in particular)
// is dropped on decode; the record's own request fields are authoritative.
type Content struct {
	Days               []Day  `json:"itinerary"`
	TotalEstimatedCost string `json:"total_estimated_cost,omitempty"`
	BestTimeToVisit    string `json:"best_time_to_visit,omitempty"`
	Transportation     string `json:"transportation,omitempty"`
	CulturalTips       string `json:"cultural_tips,omitempty"`
}

// Day is one calendar day of a plan. Day is the 1-based sequence number and
// Date its calendar date in DateLayout form.
type Day struct {
	Day           int      `json:"day"`
	Date          string   `json:"date"`
	Activities    []string `json:"activities"`
	Meals         *Meals   `json:"meals,omitempty"`
	Accommodation string   `json:"accommodation,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// Meals holds the optional per-day meal recommendations.
type Meals struct {
	Breakfast string `json:"breakfast,omitempty"`
	Lunch     string `json:"lunch,omitempty"`
	Dinner    string `json:"dinner,omitempty"`
}

// ValidateContent checks a plan against the date span it claims to cover.
// It reports the first violated invariant:
//
//   - the number of day entries equals the inclusive span between start and end
//   - day sequence numbers are 1..N, contiguous, in order
//   - each day's date equals start + (sequence - 1)
//   - each day has at least one non-blank activity
//
// The returned error carries no sentinel; callers wrap it with the sentinel
// appropriate to their operation (ErrGeneration, ErrAdjustment, ErrValidation).
func ValidateContent(c Content, start, end time.Time) error {
	want := DaySpan(start, end)
	if len(c.Days) != want {
		return fmt.Errorf("expected %d day entries, got %d", want, len(c.Days))
	}

	for i, d := range c.Days {
		seq := i + 1
		if d.Day != seq {
			return fmt.Errorf("day entry %d has sequence number %d", seq, d.Day)
		}

		wantDate := start.AddDate(0, 0, i).Format(DateLayout)
		if d.Date != wantDate {
			return fmt.Errorf("day %d has date %q, expected %q", seq, d.Date, wantDate)
		}

		if len(d.Activities) == 0 {
			return fmt.Errorf("day %d has no activities", seq)
		}
		for _, a := range d.Activities {
			if strings.TrimSpace(a) == "" {
				return fmt.Errorf("day %d has a blank activity", seq)
			}
		}
	}

	return nil
}
