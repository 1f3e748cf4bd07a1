package travel

import "roamly/models"

// Fallback buffers in minutes, applied when the travel-time provider is
// unavailable. Slower and less predictable modes get larger buffers so a
// provider outage degrades toward caution rather than double-bookings.
const (
	FallbackDriving = 15
	FallbackCycling = 20
	FallbackTransit = 25
	FallbackWalking = 30
)

// FallbackBuffer returns the buffer substituted for a failed estimate.
// Unknown modes get the walking buffer, the largest one.
func FallbackBuffer(mode models.TransportationMode) int {
	switch mode {
	case models.ModeDriving:
		return FallbackDriving
	case models.ModeCycling:
		return FallbackCycling
	case models.ModeTransit:
		return FallbackTransit
	case models.ModeWalking:
		return FallbackWalking
	default:
		return FallbackWalking
	}
}

// BufferMinutes resolves an estimate to the travel minutes the scheduler
// should plan for, substituting the fallback buffer on failure.
func BufferMinutes(est models.TravelEstimate, mode models.TransportationMode) int {
	if est.Failed() {
		return FallbackBuffer(mode)
	}
	return est.DurationMinutes
}
