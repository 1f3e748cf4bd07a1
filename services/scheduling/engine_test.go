package scheduling

import (
	"context"
	"testing"

	"roamly/models"
	"roamly/utils"
)

// stubEstimator returns a fixed travel time, or a failed estimate when
// fail is set. It counts lookups so tests can assert call behavior.
type stubEstimator struct {
	minutes int
	fail    bool
	calls   int
}

func (s *stubEstimator) Estimate(_ context.Context, origin, destination string, _ models.TransportationMode) models.TravelEstimate {
	s.calls++
	if s.fail {
		return models.TravelEstimate{Status: models.EstimateError, ErrorMessage: "provider unavailable"}
	}
	if origin == destination {
		return models.TravelEstimate{Status: models.EstimateOK}
	}
	return models.TravelEstimate{DurationMinutes: s.minutes, Status: models.EstimateOK}
}

func mustClock(t *testing.T, s string) int {
	t.Helper()
	m, err := utils.ParseClock(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return m
}

func formatAll(slots []int) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = utils.FormatClock(s)
	}
	return out
}

func containsSlot(slots []int, want int) bool {
	for _, s := range slots {
		if s == want {
			return true
		}
	}
	return false
}

func TestIsSlotAvailable_Boundary(t *testing.T) {
	engine := &DefaultAvailabilityEngine{Estimator: &stubEstimator{}}
	previous := &models.Appointment{
		Start:   mustClock(t, "10:15"),
		End:     mustClock(t, "11:00"),
		Address: "12 Oak Street",
	}

	// Travel 40 + grace 5 puts the minimum start at 11:45.
	if engine.IsSlotAvailable(mustClock(t, "11:15"), 45, previous, "44 Elm Road", 40, 5) {
		t.Fatalf("11:15 should be unavailable before the travel buffer elapses")
	}
	if !engine.IsSlotAvailable(mustClock(t, "11:45"), 45, previous, "44 Elm Road", 40, 5) {
		t.Fatalf("11:45 is exactly the minimum start and must be available")
	}
	if !engine.IsSlotAvailable(mustClock(t, "12:00"), 45, previous, "44 Elm Road", 40, 5) {
		t.Fatalf("12:00 is past the minimum start and must be available")
	}
}

func TestIsSlotAvailable_NoPreviousAppointment(t *testing.T) {
	engine := &DefaultAvailabilityEngine{Estimator: &stubEstimator{}}
	if !engine.IsSlotAvailable(mustClock(t, "09:00"), 30, nil, "44 Elm Road", 25, 5) {
		t.Fatalf("a slot with nothing preceding it must be available")
	}
}

func TestIsSlotAvailable_Monotonic(t *testing.T) {
	engine := &DefaultAvailabilityEngine{Estimator: &stubEstimator{}}
	previous := &models.Appointment{End: mustClock(t, "11:00"), Address: "12 Oak Street"}
	requested := mustClock(t, "11:45")

	// Increasing travel or grace can only turn an available slot
	// unavailable, never the reverse.
	wasAvailable := true
	for travel := 0; travel <= 90; travel += 5 {
		available := engine.IsSlotAvailable(requested, 45, previous, "44 Elm Road", travel, 5)
		if available && !wasAvailable {
			t.Fatalf("slot became available again at travel=%d", travel)
		}
		wasAvailable = available
	}

	wasAvailable = true
	for grace := 0; grace <= 90; grace += 5 {
		available := engine.IsSlotAvailable(requested, 45, previous, "44 Elm Road", 30, grace)
		if available && !wasAvailable {
			t.Fatalf("slot became available again at grace=%d", grace)
		}
		wasAvailable = available
	}
}

func TestAvailableSlots_EmptyDay(t *testing.T) {
	est := &stubEstimator{minutes: 20}
	engine := &DefaultAvailabilityEngine{Estimator: est}
	hours := models.WorkingHours{Start: mustClock(t, "09:00"), End: mustClock(t, "17:00")}

	slots, err := engine.AvailableSlots(context.Background(), nil, "1 Home Base", hours, 60, "44 Elm Road", models.ModeDriving, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !containsSlot(slots, mustClock(t, "09:00")) {
		t.Fatalf("expected 09:00 in %v", formatAll(slots))
	}
	if containsSlot(slots, mustClock(t, "16:15")) {
		t.Fatalf("16:15 would end at 17:15, past closing: %v", formatAll(slots))
	}
	if got, want := len(slots), 29; got != want {
		// 09:00 through 16:00 inclusive at 15-minute steps.
		t.Fatalf("expected %d slots, got %d: %v", want, got, formatAll(slots))
	}
	if est.calls != 0 {
		t.Fatalf("no appointments means no travel lookups, got %d", est.calls)
	}
}

func TestAvailableSlots_OverlapAndBuffer(t *testing.T) {
	est := &stubEstimator{minutes: 10}
	engine := &DefaultAvailabilityEngine{Estimator: est}
	hours := models.WorkingHours{Start: mustClock(t, "09:00"), End: mustClock(t, "17:00")}
	appointments := []models.Appointment{
		{Start: mustClock(t, "10:00"), End: mustClock(t, "10:30"), Address: "12 Oak Street"},
	}

	slots, err := engine.AvailableSlots(context.Background(), appointments, "1 Home Base", hours, 45, "44 Elm Road", models.ModeDriving, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, excluded := range []string{"09:30", "09:45", "10:00", "10:15"} {
		if containsSlot(slots, mustClock(t, excluded)) {
			t.Fatalf("%s overlaps the 10:00-10:30 appointment: %v", excluded, formatAll(slots))
		}
	}
	// 10:30 clears the overlap rule but not the travel buffer
	// (10 travel + 5 grace puts the minimum start at 10:45).
	if containsSlot(slots, mustClock(t, "10:30")) {
		t.Fatalf("10:30 violates the travel buffer: %v", formatAll(slots))
	}
	if !containsSlot(slots, mustClock(t, "10:45")) {
		t.Fatalf("expected 10:45 as the first slot after the buffer: %v", formatAll(slots))
	}
	if !containsSlot(slots, mustClock(t, "09:00")) {
		t.Fatalf("expected 09:00 before the appointment: %v", formatAll(slots))
	}

	// No returned slot may run past closing or overlap the appointment.
	for _, s := range slots {
		if s+45 > hours.End {
			t.Fatalf("slot %s runs past closing", utils.FormatClock(s))
		}
		if s < appointments[0].End && appointments[0].Start < s+45 {
			t.Fatalf("slot %s overlaps the existing appointment", utils.FormatClock(s))
		}
	}
}

func TestAvailableSlots_FallbackBufferOnEstimateFailure(t *testing.T) {
	est := &stubEstimator{fail: true}
	engine := &DefaultAvailabilityEngine{Estimator: est}
	hours := models.WorkingHours{Start: mustClock(t, "09:00"), End: mustClock(t, "17:00")}
	appointments := []models.Appointment{
		{Start: mustClock(t, "10:00"), End: mustClock(t, "10:30"), Address: "12 Oak Street"},
	}

	// Driving fallback is 15 minutes; with grace 5 the first slot after
	// the appointment is 10:50, so the grid admits 11:00 first.
	slots, err := engine.AvailableSlots(context.Background(), appointments, "1 Home Base", hours, 30, "44 Elm Road", models.ModeDriving, 5)
	if err != nil {
		t.Fatalf("estimator failure must degrade, not fail: %v", err)
	}

	var firstAfter int
	for _, s := range slots {
		if s >= appointments[0].End {
			firstAfter = s
			break
		}
	}
	if utils.FormatClock(firstAfter) != "11:00" {
		t.Fatalf("expected 11:00 as first slot after the appointment, got %s", utils.FormatClock(firstAfter))
	}
}

func TestAvailableSlots_GridAlignsToWindowStart(t *testing.T) {
	engine := &DefaultAvailabilityEngine{Estimator: &stubEstimator{}}
	hours := models.WorkingHours{Start: mustClock(t, "09:07"), End: mustClock(t, "10:07")}

	slots, err := engine.AvailableSlots(context.Background(), nil, "1 Home Base", hours, 15, "44 Elm Road", models.ModeDriving, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:07", "09:22", "09:37", "09:52"}
	got := formatAll(slots)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAvailableSlots_Ascending(t *testing.T) {
	engine := &DefaultAvailabilityEngine{Estimator: &stubEstimator{minutes: 5}}
	hours := models.WorkingHours{Start: mustClock(t, "09:00"), End: mustClock(t, "17:00")}
	appointments := []models.Appointment{
		{Start: mustClock(t, "10:00"), End: mustClock(t, "11:00"), Address: "12 Oak Street"},
		{Start: mustClock(t, "13:00"), End: mustClock(t, "14:00"), Address: "90 Pine Lane"},
	}

	slots, err := engine.AvailableSlots(context.Background(), appointments, "1 Home Base", hours, 30, "44 Elm Road", models.ModeCycling, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			t.Fatalf("slots not strictly ascending: %v", formatAll(slots))
		}
	}
}

func TestAvailableSlots_InvalidWorkingHours(t *testing.T) {
	engine := &DefaultAvailabilityEngine{Estimator: &stubEstimator{}}
	hours := models.WorkingHours{Start: mustClock(t, "17:00"), End: mustClock(t, "09:00")}

	_, err := engine.AvailableSlots(context.Background(), nil, "1 Home Base", hours, 30, "44 Elm Road", models.ModeDriving, 5)
	if err == nil {
		t.Fatalf("expected error for inverted working hours")
	}
	if !HasCode(err, CodeInvalidConfiguration) {
		t.Fatalf("expected %s error, got %v", CodeInvalidConfiguration, err)
	}
}

func TestAvailableSlots_InvalidDuration(t *testing.T) {
	engine := &DefaultAvailabilityEngine{Estimator: &stubEstimator{}}
	hours := models.WorkingHours{Start: mustClock(t, "09:00"), End: mustClock(t, "17:00")}

	for _, duration := range []int{0, -30} {
		_, err := engine.AvailableSlots(context.Background(), nil, "1 Home Base", hours, duration, "44 Elm Road", models.ModeDriving, 5)
		if err == nil {
			t.Fatalf("expected error for duration %d", duration)
		}
		if !HasCode(err, CodeInvalidRequest) {
			t.Fatalf("expected %s error, got %v", CodeInvalidRequest, err)
		}
	}
}

func TestAvailableSlots_DoesNotMutateInputs(t *testing.T) {
	engine := &DefaultAvailabilityEngine{Estimator: &stubEstimator{minutes: 10}}
	hours := models.WorkingHours{Start: mustClock(t, "09:00"), End: mustClock(t, "17:00")}
	appointments := []models.Appointment{
		{Start: mustClock(t, "10:00"), End: mustClock(t, "10:30"), Address: "12 Oak Street"},
	}
	original := appointments[0]

	if _, err := engine.AvailableSlots(context.Background(), appointments, "1 Home Base", hours, 45, "44 Elm Road", models.ModeDriving, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if appointments[0] != original {
		t.Fatalf("engine mutated its input: %+v", appointments[0])
	}
}
