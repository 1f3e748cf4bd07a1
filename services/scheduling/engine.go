package scheduling

import (
	"context"
	"fmt"

	"roamly/models"
	"roamly/services/travel"
	"roamly/utils"

	"go.uber.org/zap"
)

// DefaultSlotGranularity is the step between candidate start times,
// aligned to the start of the working window (a window opening at 09:07
// yields 09:07, 09:22, ...).
const DefaultSlotGranularity = 15

// AvailabilityEngine computes bookable start times for a mobile-service
// provider whose consecutive appointments happen at different addresses.
type AvailabilityEngine interface {
	// IsSlotAvailable validates one requested start against the
	// immediately preceding appointment, given the travel and grace
	// minutes the caller already resolved.
	IsSlotAvailable(requestedStart, serviceDuration int, previous *models.Appointment, destinationAddress string, travelMinutes, graceMinutes int) bool
	// AvailableSlots enumerates every legal start time for a service of
	// the given duration within the working window, honouring both
	// interval overlap and travel buffers from the nearest preceding
	// appointment. Results are minutes from midnight, ascending.
	AvailableSlots(ctx context.Context, appointments []models.Appointment, homeBase string, hours models.WorkingHours, serviceDuration int, destinationAddress string, mode models.TransportationMode, graceMinutes int) ([]int, error)
}

// DefaultAvailabilityEngine is the production implementation. It holds
// no state between calls and never mutates its inputs; the only
// suspension point is the estimator's network round-trip.
type DefaultAvailabilityEngine struct {
	Estimator   travel.Estimator
	Granularity int // slot step in minutes; zero means DefaultSlotGranularity
	Logger      *zap.Logger
}

// NewDefaultAvailabilityEngine constructs an engine over the given
// travel estimator.
func NewDefaultAvailabilityEngine(estimator travel.Estimator) *DefaultAvailabilityEngine {
	return &DefaultAvailabilityEngine{
		Estimator:   estimator,
		Granularity: DefaultSlotGranularity,
		Logger:      utils.GetLogger(),
	}
}

// IsSlotAvailable reports whether requestedStart leaves enough room
// after the previous appointment for travel plus grace. The boundary is
// inclusive: a start exactly at previous.End + gap is available. A nil
// previous means nothing precedes the slot, so no gap applies.
func (e *DefaultAvailabilityEngine) IsSlotAvailable(requestedStart, serviceDuration int, previous *models.Appointment, destinationAddress string, travelMinutes, graceMinutes int) bool {
	if previous == nil {
		return true
	}
	minimumStart := previous.End + RequiredGap(float64(travelMinutes), float64(graceMinutes))
	available := requestedStart >= minimumStart
	if e.Logger != nil {
		e.Logger.Debug("slot validation",
			zap.String("requestedStart", utils.FormatClock(requestedStart)),
			zap.Int("serviceDuration", serviceDuration),
			zap.String("previousEnd", utils.FormatClock(previous.End)),
			zap.String("destination", destinationAddress),
			zap.String("minimumStart", utils.FormatClock(minimumStart)),
			zap.Bool("available", available))
	}
	return available
}

// AvailableSlots walks the candidate grid and keeps every start whose
// service interval fits the working window, overlaps no existing
// appointment, and satisfies the travel buffer from the nearest
// preceding appointment. When nothing precedes a candidate the provider
// departs home early enough, so only the window bounds apply; the home
// base still feeds departure-time displays.
//
// The appointment list must already be in chronological order. The
// result is recomputed fresh on every call.
func (e *DefaultAvailabilityEngine) AvailableSlots(ctx context.Context, appointments []models.Appointment, homeBase string, hours models.WorkingHours, serviceDuration int, destinationAddress string, mode models.TransportationMode, graceMinutes int) ([]int, error) {
	if hours.Start >= hours.End {
		return nil, NewInvalidConfigurationError(fmt.Sprintf("working hours start %s must precede end %s",
			utils.FormatClock(hours.Start), utils.FormatClock(hours.End)))
	}
	if serviceDuration <= 0 {
		return nil, NewInvalidRequestError(fmt.Sprintf("service duration must be positive, got %d", serviceDuration))
	}

	step := e.Granularity
	if step <= 0 {
		step = DefaultSlotGranularity
	}

	// One estimator query per distinct origin within this call; the
	// estimate lifecycle stays per-call, never shared across calls.
	gapByOrigin := make(map[string]int)
	requiredGapFrom := func(origin string) int {
		if gap, ok := gapByOrigin[origin]; ok {
			return gap
		}
		est := e.Estimator.Estimate(ctx, origin, destinationAddress, mode)
		gap := RequiredGap(float64(travel.BufferMinutes(est, mode)), float64(graceMinutes))
		gapByOrigin[origin] = gap
		return gap
	}

	var slots []int
	for candidate := hours.Start; candidate+serviceDuration <= hours.End; candidate += step {
		candidateEnd := candidate + serviceDuration

		if overlapsAny(candidate, candidateEnd, appointments) {
			continue
		}

		if prev := precedingAppointment(appointments, candidate); prev != nil {
			if candidate < prev.End+requiredGapFrom(prev.Address) {
				continue
			}
		}

		slots = append(slots, candidate)
	}
	return slots, nil
}

// overlapsAny applies the strict half-open interval rule: [start, end)
// overlaps [apt.Start, apt.End) iff start < apt.End && apt.Start < end.
// Touching endpoints alone do not overlap; the travel-buffer check
// rejects those separately.
func overlapsAny(start, end int, appointments []models.Appointment) bool {
	for i := range appointments {
		if start < appointments[i].End && appointments[i].Start < end {
			return true
		}
	}
	return false
}

// precedingAppointment returns the appointment with the greatest end
// time at or before the candidate, or nil when nothing precedes it.
// Linear scan over the chronologically sorted day.
func precedingAppointment(appointments []models.Appointment, candidate int) *models.Appointment {
	var prev *models.Appointment
	for i := range appointments {
		if appointments[i].End <= candidate {
			if prev == nil || appointments[i].End > prev.End {
				prev = &appointments[i]
			}
		}
	}
	return prev
}
