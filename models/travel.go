package models

// TransportationMode is how the provider moves between appointments.
type TransportationMode string

const (
	ModeDriving TransportationMode = "driving"
	ModeWalking TransportationMode = "walking"
	ModeCycling TransportationMode = "cycling"
	ModeTransit TransportationMode = "transit"
)

// Valid reports whether the mode is one of the supported values.
func (m TransportationMode) Valid() bool {
	switch m {
	case ModeDriving, ModeWalking, ModeCycling, ModeTransit:
		return true
	}
	return false
}

// EstimateStatus indicates whether a travel-time lookup succeeded.
type EstimateStatus string

const (
	EstimateOK    EstimateStatus = "OK"
	EstimateError EstimateStatus = "ERROR"
)

// TravelEstimate is the result of a single travel-time lookup.
// A failed lookup carries Status EstimateError and an ErrorMessage;
// callers substitute a mode-specific fallback buffer instead of failing.
type TravelEstimate struct {
	DurationMinutes int            `json:"durationMinutes"`
	DistanceMeters  float64        `json:"distanceMeters"`
	Status          EstimateStatus `json:"status"`
	ErrorMessage    string         `json:"errorMessage,omitempty"`
}

// Failed reports whether the lookup must be replaced by a fallback buffer.
func (e TravelEstimate) Failed() bool {
	return e.Status != EstimateOK
}

// ReminderPayload is the queued payload for a departure reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ClientName    string `json:"clientName"`
	Address       string `json:"address"`
	Date          string `json:"date"`
	DepartBy      string `json:"departBy"` // "HH:MM"
	Title         string `json:"title"`
	Body          string `json:"body"`
}
