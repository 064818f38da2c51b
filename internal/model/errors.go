package model

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrRitualCompleted is returned when completing a ritual that is no
	// longer pending.
	ErrRitualCompleted = errors.New("ritual already completed")

	ErrInvalidMode     = errors.New("invalid tribute mode")
	ErrInvalidStatus   = errors.New("invalid agent status")
	ErrInvalidLevel    = errors.New("invalid log level")
	ErrNegativeDelta   = errors.New("tribute deltas must be non-negative")
	ErrCounterOverflow = errors.New("tribute counter would overflow")
	ErrNegativeMetric  = errors.New("metric values must be non-negative")
	ErrInvalidDays     = errors.New("daysAnalyzed must be >= 1")
	ErrInvalidScore    = errors.New("integrity score must be within 0-100")
	ErrInvalidIssues   = errors.New("issues found must be non-negative")
	ErrInvalidSelector = errors.New("unknown data selection tag")
)

// IsValidation reports whether err is an input validation failure.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidMode, ErrInvalidStatus, ErrInvalidLevel, ErrNegativeDelta, ErrCounterOverflow,
		ErrNegativeMetric, ErrInvalidDays, ErrInvalidScore, ErrInvalidIssues,
		ErrInvalidSelector,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
