package scheduling

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the availability engine. Configuration and
// request errors indicate caller mistakes and fail fast; travel
// estimation failures are absorbed by the fallback-buffer policy and
// never appear here.
const (
	CodeInvalidConfiguration = "invalidConfiguration"
	CodeInvalidRequest       = "invalidRequest"
	CodeInvalidSchedule      = "invalidSchedule"
)

// ScheduleError carries a machine-readable code alongside the message.
type ScheduleError struct {
	Code    string
	Message string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInvalidConfigurationError(msg string) error {
	return &ScheduleError{Code: CodeInvalidConfiguration, Message: msg}
}

func NewInvalidRequestError(msg string) error {
	return &ScheduleError{Code: CodeInvalidRequest, Message: msg}
}

func NewInvalidScheduleError(msg string) error {
	return &ScheduleError{Code: CodeInvalidSchedule, Message: msg}
}

// HasCode reports whether err is a ScheduleError with the given code.
func HasCode(err error, code string) bool {
	var se *ScheduleError
	return errors.As(err, &se) && se.Code == code
}
