package scheduling

import "fmt"

// DepartureTime returns the latest time (minutes from midnight) to leave
// the previous location and still arrive by appointmentStart. Zero travel
// yields the start itself. Scheduling is single-day: a subtraction that
// would cross backward past midnight is an InvalidScheduleError.
func DepartureTime(appointmentStart, travelMinutes int) (int, error) {
	if travelMinutes < 0 {
		return 0, NewInvalidRequestError(fmt.Sprintf("travel minutes must be non-negative, got %d", travelMinutes))
	}
	departure := appointmentStart - travelMinutes
	if departure < 0 {
		return 0, NewInvalidScheduleError(fmt.Sprintf("departure would fall %d minutes before midnight", -departure))
	}
	return departure, nil
}
