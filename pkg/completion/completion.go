// Package completion provides the text-completion backends for free
// conversation turns.
//
// The online backend is an OpenAI-style chat completion API; the offline
// backend is a deterministic keyword-bucketed generator. The dialogue
// router owns the fallback decision — a backend reports failure through
// its error return and never by a degraded reply.
package completion

import (
	"context"
	"errors"
	"fmt"
	"unicode"
)

// Service generates a reply for a child's utterance.
type Service interface {
	// Complete returns the reply text for the utterance in the given
	// language ("en" or "ar"). Any network, auth, or quota failure is
	// reported as an error wrapping ErrUnavailable.
	Complete(ctx context.Context, lang, text string) (string, error)
}

// ErrUnavailable is returned when the backend cannot serve the request.
var ErrUnavailable = errors.New("completion: service unavailable")

// APIError represents an error response from the completion API.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("completion: API error %d: %s", e.StatusCode, e.Message)
}

// Unwrap marks every API error as a service-unavailable condition for
// the router's fallback check.
func (e *APIError) Unwrap() error {
	return ErrUnavailable
}

// IsRetryable returns true if the request should be retried.
func (e *APIError) IsRetryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// DetectLang resolves "auto" to a concrete language.
// The heuristic mirrors the offline path of the original system: a text
// that is more than 30% Arabic script is Arabic, anything else English.
func DetectLang(lang, text string) string {
	if lang == "en" || lang == "ar" {
		return lang
	}
	if text == "" {
		return "en"
	}
	arabic, total := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if r >= 0x0600 && r <= 0x06FF {
			arabic++
		}
	}
	if total > 0 && float64(arabic) > float64(total)*0.3 {
		return "ar"
	}
	return "en"
}
