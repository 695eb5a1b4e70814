// Package genai is the client for the generation collaborator: the external
// LLM that turns trip parameters into itinerary content. Model output is
// treated as untrusted text — it is decoded here but structurally validated by
// the service layer before anything is persisted.
package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/wanderplan/trip-planner/backend/internal/domain"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-1.5-flash"

// Gemini generates and adjusts itineraries with Google's Gemini models via
// langchaingo. Each method makes exactly one model call; retry policy, if any,
// belongs to the caller.
type Gemini struct {
	model llms.Model
}

// NewGemini constructs a Gemini client. The model name may be empty, in which
// case DefaultModel is used.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai.NewGemini: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("genai.NewGemini: %w", err)
	}

	return &Gemini{model: client}, nil
}

// GenerateItinerary asks the model for a fresh plan covering the inclusive
// date span, one day entry per calendar day, focused on the given interests.
func (g *Gemini) GenerateItinerary(ctx context.Context, destination string, start, end time.Time, interests []string) (domain.Content, error) {
	resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, generationPrompt(destination, start, end, interests))
	if err != nil {
		return domain.Content{}, fmt.Errorf("genai: generate: %w", err)
	}
	return DecodeContent(resp)
}

// AdjustItinerary asks the model for a complete replacement of current,
// modified per the free-text instruction. The prompt demands the same JSON
// structure and the same day count; whether the model complied is checked by
// the caller against the original record's date span.
func (g *Gemini) AdjustItinerary(ctx context.Context, current domain.Content, instruction string) (domain.Content, error) {
	prompt, err := adjustmentPrompt(current, instruction)
	if err != nil {
		return domain.Content{}, fmt.Errorf("genai: adjust: %w", err)
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return domain.Content{}, fmt.Errorf("genai: adjust: %w", err)
	}
	return DecodeContent(resp)
}

// DecodeContent extracts the JSON payload from a raw model response and
// decodes it into a Content value. Unknown fields (including any interests the
// model echoes back) are dropped.
func DecodeContent(response string) (domain.Content, error) {
	raw, err := ExtractJSON(response)
	if err != nil {
		return domain.Content{}, fmt.Errorf("genai: %w", err)
	}

	var c domain.Content
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return domain.Content{}, fmt.Errorf("genai: decode response: %w", err)
	}
	return c, nil
}
