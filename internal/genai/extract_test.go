package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_FencedBlock(t *testing.T) {
	resp := "Here is your itinerary:\n```json\n{\"itinerary\": []}\n```\nEnjoy!"

	got, err := ExtractJSON(resp)

	require.NoError(t, err)
	assert.JSONEq(t, `{"itinerary": []}`, got)
}

func TestExtractJSON_FencedBlockNoLanguage(t *testing.T) {
	resp := "```\n{\"total_estimated_cost\": \"€400\"}\n```"

	got, err := ExtractJSON(resp)

	require.NoError(t, err)
	assert.JSONEq(t, `{"total_estimated_cost": "€400"}`, got)
}

func TestExtractJSON_RawObject(t *testing.T) {
	resp := `The plan: {"itinerary": [{"day": 1}]} — let me know.`

	got, err := ExtractJSON(resp)

	require.NoError(t, err)
	assert.JSONEq(t, `{"itinerary": [{"day": 1}]}`, got)
}

func TestExtractJSON_BareJSON(t *testing.T) {
	got, err := ExtractJSON(`{"itinerary": []}`)

	require.NoError(t, err)
	assert.JSONEq(t, `{"itinerary": []}`, got)
}

func TestExtractJSON_SkipsNonJSONCodeBlock(t *testing.T) {
	resp := "```python\nprint('hi')\n```\n{\"itinerary\": []}"

	got, err := ExtractJSON(resp)

	require.NoError(t, err)
	assert.JSONEq(t, `{"itinerary": []}`, got)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("Sorry, I can't help with that request.")

	require.Error(t, err)
}

func TestDecodeContent_GeminiStyleResponse(t *testing.T) {
	resp := "```json\n" + `{
  "itinerary": [
    {
      "day": 1,
      "date": "2025-06-01",
      "activities": ["Morning: Alfama walk", "Evening: fado show"],
      "meals": {"lunch": "Time Out Market"},
      "accommodation": "Baixa district",
      "notes": "Wear comfortable shoes"
    }
  ],
  "total_estimated_cost": "€150-250",
  "transportation": "Tram 28 and walking",
  "interests": ["food", "history"]
}` + "\n```"

	got, err := DecodeContent(resp)

	require.NoError(t, err)
	require.Len(t, got.Days, 1)
	assert.Equal(t, 1, got.Days[0].Day)
	assert.Equal(t, "2025-06-01", got.Days[0].Date)
	assert.Equal(t, []string{"Morning: Alfama walk", "Evening: fado show"}, got.Days[0].Activities)
	require.NotNil(t, got.Days[0].Meals)
	assert.Equal(t, "Time Out Market", got.Days[0].Meals.Lunch)
	assert.Equal(t, "€150-250", got.TotalEstimatedCost)
	// The echoed "interests" field has nowhere to land — it is dropped on decode.
}

func TestDecodeContent_NotJSON(t *testing.T) {
	_, err := DecodeContent("I am a travel planning assistant, how can I help?")

	require.Error(t, err)
}
