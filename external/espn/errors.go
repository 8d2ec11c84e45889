package espn

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"
)

// Failure taxonomy for one scoreboard fetch. InvalidURL indicates a catalog
// bug: routing segments are static, so a malformed URL should never happen
// at runtime.
var (
	ErrInvalidURL      = crerr.New("invalid scoreboard url")
	ErrInvalidResponse = crerr.New("invalid response from scoreboard host")
	ErrDecode          = crerr.New("scoreboard payload decode failed")
)

// errTransient marks failures that should count against the circuit breaker:
// network errors and retryable upstream statuses.
var errTransient = crerr.New("transient scoreboard failure")

// StatusError reports a non-200 upstream response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scoreboard request failed with status %d", e.Code)
}

// AsStatusError unwraps err into a StatusError when one is present.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if crerr.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

func isCircuitFailure(err error) bool {
	if crerr.Is(err, errTransient) {
		return true
	}
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.Code == 429 || statusErr.Code >= 500
	}
	return false
}
