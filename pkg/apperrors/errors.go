// Package apperrors defines the sentinel errors shared across packages.
package apperrors

import "errors"

var (
	ErrEnrichmentUnavailable = errors.New("enrichment service unavailable")
	ErrMalformedResponse     = errors.New("malformed enrichment response")
	ErrInvalidEntryPayload   = errors.New("invalid entry payload")
)
