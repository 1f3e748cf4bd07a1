package travel

import "fmt"

// EstimationError describes why a travel-time lookup failed. It is
// recorded on the returned estimate and logged, never returned to
// callers of the scheduler.
type EstimationError struct {
	Code    string
	Message string
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewEstimationError(code, msg string) error {
	return &EstimationError{
		Code:    code,
		Message: msg,
	}
}
