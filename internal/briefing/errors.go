// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package briefing

import (
	"errors"
	"fmt"

	"github.com/pdiddy/briefing-engine/internal/compose"
	"github.com/pdiddy/briefing-engine/internal/search"
)

// Fields reported by ValidationError.
const (
	FieldTopics = "topics"
	FieldAPIKey = "api_key"
)

// ValidationError reports a missing required input. No network call is made
// when a run fails validation.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required input: %s", e.Field)
}

// ErrNoResults is returned when the search succeeded but found nothing.
var ErrNoResults = errors.New("search returned no results")

// ErrRunInProgress is returned when a session already has a run in flight.
var ErrRunInProgress = errors.New("a briefing is already being generated for this session")

// FailureKind classifies a failed run for presentation.
type FailureKind string

const (
	KindNone        FailureKind = ""
	KindValidation  FailureKind = "validation"
	KindSearch      FailureKind = "search"
	KindNoResults   FailureKind = "no_results"
	KindComposition FailureKind = "composition"
	KindBusy        FailureKind = "busy"
	KindUnknown     FailureKind = "unknown"
)

// Kind returns the failure kind of err. A nil error has KindNone.
func Kind(err error) FailureKind {
	var (
		ve *ValidationError
		se *search.Error
		ce *compose.Error
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &ve):
		return KindValidation
	case errors.Is(err, ErrNoResults):
		return KindNoResults
	case errors.As(err, &se):
		return KindSearch
	case errors.As(err, &ce):
		return KindComposition
	case errors.Is(err, ErrRunInProgress):
		return KindBusy
	default:
		return KindUnknown
	}
}

// Message returns the user-facing text for err.
func Message(err error) string {
	switch Kind(err) {
	case KindNone:
		return ""
	case KindValidation:
		var ve *ValidationError
		errors.As(err, &ve)
		if ve.Field == FieldAPIKey {
			return "Please enter your search API key!"
		}
		return "Please enter at least one topic of interest!"
	case KindNoResults:
		return "No news found for your topics. Try different keywords."
	case KindSearch:
		var se *search.Error
		errors.As(err, &se)
		return fmt.Sprintf("Search failed: %v", se.Cause)
	case KindComposition:
		var ce *compose.Error
		errors.As(err, &ce)
		return fmt.Sprintf("Briefing generation failed: %v", ce.Cause)
	case KindBusy:
		return "A briefing is already being generated. Please wait for it to finish."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
