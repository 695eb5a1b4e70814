package genai

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wanderplan/trip-planner/backend/internal/domain"
)

// generationPrompt builds the prompt for a fresh itinerary. It spells out the
// exact JSON shape the Content type decodes, so a well-behaved model response
// round-trips without repair.
func generationPrompt(destination string, start, end time.Time, interests []string) string {
	days := domain.DaySpan(start, end)
	interestList := strings.Join(interests, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed travel itinerary for %s from %s to %s (%d days).\n\n",
		destination, start.Format(domain.DateLayout), end.Format(domain.DateLayout), days)
	fmt.Fprintf(&b, "User interests: %s\n\n", interestList)
	b.WriteString("Respond with JSON only, using exactly this structure:\n")
	fmt.Fprintf(&b, `{
  "itinerary": [
    {
      "day": 1,
      "date": "%s",
      "activities": [
        "Morning: activity description with location",
        "Afternoon: activity description with location",
        "Evening: activity description with location"
      ],
      "meals": {
        "breakfast": "restaurant or cafe recommendation",
        "lunch": "restaurant or cafe recommendation",
        "dinner": "restaurant or cafe recommendation"
      },
      "accommodation": "hotel or area recommendation",
      "notes": "important tips for the day"
    }
  ],
  "total_estimated_cost": "estimated budget range",
  "best_time_to_visit": "season and weather information",
  "transportation": "how to get around",
  "cultural_tips": "important cultural information"
}
`, start.Format(domain.DateLayout))
	fmt.Fprintf(&b, "\nProvide exactly %d entries in \"itinerary\", one per calendar day from %s through %s, ",
		days, start.Format(domain.DateLayout), end.Format(domain.DateLayout))
	b.WriteString("with \"day\" numbered from 1 and \"date\" in YYYY-MM-DD form.\n")
	fmt.Fprintf(&b, "Focus on the user's interests: %s. ", interestList)
	b.WriteString("Include specific places, restaurants, and activities, and keep the schedule realistic about travel time between locations.")

	return b.String()
}

// adjustmentPrompt builds the prompt for adjusting an existing plan. The full
// current plan is embedded so the model works in context, and the response is
// required to be a complete replacement — not a diff — covering the same days.
func adjustmentPrompt(current domain.Content, instruction string) (string, error) {
	raw, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal current plan: %w", err)
	}

	var b strings.Builder
	b.WriteString("Here is the current travel itinerary:\n")
	b.Write(raw)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "The user wants to adjust it with this request: %q\n\n", instruction)
	b.WriteString("Modify the itinerary according to the request and respond with the complete updated itinerary as JSON, ")
	b.WriteString("in exactly the same structure. Keep the same number of days, the same day numbering, and the same dates. ")
	b.WriteString("Make the changes substantial and visible — replace activities, meals, and accommodation where the request calls for it, ")
	b.WriteString("not minor tweaks. Respond with JSON only.")

	return b.String(), nil
}
