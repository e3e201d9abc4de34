package services

import "errors"

// Failure taxonomy of the recommendation core. Callers match with errors.Is;
// an empty recommendation result is a valid outcome, not an error.
var (
	ErrUnreadableImage  = errors.New("unreadable or corrupt image")
	ErrModelUnavailable = errors.New("feature extraction model unavailable")
	ErrUnknownOccasion  = errors.New("unknown occasion")
	ErrComputeTimeout   = errors.New("compute time budget exceeded")
)
