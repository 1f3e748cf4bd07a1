package models

import "time"

// Appointment is a confirmed booking on a provider's day calendar.
// Start and End are minutes from midnight (e.g., 540 for 9:00 AM); the
// appointment address is where the provider performs the service.
type Appointment struct {
	ID         string    `bson:"id" json:"id"`
	ProviderID string    `bson:"providerId" json:"providerId"`
	Date       string    `bson:"date" json:"date"` // e.g., "2025-02-25"
	Start      int       `bson:"start" json:"start"`
	End        int       `bson:"end" json:"end"`
	Address    string    `bson:"address" json:"address"`
	ClientName string    `bson:"clientName,omitempty" json:"clientName,omitempty"`
	Service    string    `bson:"service,omitempty" json:"service,omitempty"`
	CreatedAt  time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// WorkingHours is the provider's bookable window for a single day,
// in minutes from midnight. Start must be strictly before End.
type WorkingHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// BookingRequest is a client's proposed appointment under validation.
type BookingRequest struct {
	RequestedStart  int `json:"requestedStart"`
	ServiceDuration int `json:"serviceDuration"` // minutes, must be positive
}
