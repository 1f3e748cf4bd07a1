package scheduling

import "math"

// DefaultGraceMinutes is the setup/teardown buffer applied between
// appointments independent of travel time.
const DefaultGraceMinutes = 5

// RequiredGap returns the minimum gap in whole minutes between the end
// of one appointment and the start of the next: travel time plus the
// grace buffer, rounded up when either input is fractional.
func RequiredGap(travelMinutes, graceMinutes float64) int {
	if travelMinutes < 0 {
		travelMinutes = 0
	}
	if graceMinutes < 0 {
		graceMinutes = 0
	}
	return int(math.Ceil(travelMinutes + graceMinutes))
}
