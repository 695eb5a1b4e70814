package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// itinerary does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when a request fails business
// rule validation (e.g. empty destination, end date before start date, an
// interest tag outside the recognized vocabulary).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrGeneration is returned when the generation collaborator fails: the call
// errors or times out, the response contains no decodable JSON, or the decoded
// plan violates a structural invariant. No record is written when generation
// fails. Handlers should map this to HTTP 502 Bad Gateway.
var ErrGeneration = errors.New("generation failed")

// ErrAdjustment is returned when an adjustment request is rejected: the
// instruction is blank, or the collaborator's replacement plan fails validation
// against the original record's date span. The stored record is left untouched.
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrAdjustment = errors.New("adjustment rejected")
