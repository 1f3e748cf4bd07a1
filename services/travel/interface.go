package travel

import (
	"context"

	"roamly/models"
)

// Estimator produces a travel-time estimate between two appointment
// addresses. Failures never surface as errors: a failed lookup is
// returned as an estimate with Status EstimateError, and the scheduler
// substitutes the mode-specific fallback buffer.
type Estimator interface {
	Estimate(ctx context.Context, origin, destination string, mode models.TransportationMode) models.TravelEstimate
}
