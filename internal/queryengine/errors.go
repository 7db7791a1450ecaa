package queryengine

import (
	"errors"
	"fmt"
)

// ErrNoCode is reported when the model's response contains no <code>
// block. The question may simply be retried; nothing upstream failed.
var ErrNoCode = errors.New("no code block found in response")

// ServiceError marks completion-service failures (unreachable, auth,
// empty or unusable response) so callers can tell "the upstream
// dependency failed" apart from "the model produced nothing parseable".
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("completion service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
