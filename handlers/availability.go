package handlers

import (
	"net/http"
	"strconv"

	"roamly/config"
	appointmentRepo "roamly/database/repository/appointment"
	"roamly/models"
	"roamly/services/scheduling"
	"roamly/services/travel"
	"roamly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler exposes the slot availability engine over HTTP.
type AvailabilityHandler struct {
	Engine    scheduling.AvailabilityEngine
	Estimator travel.Estimator
	Repo      appointmentRepo.AppointmentRepository
	Logger    *zap.Logger
}

// NewAvailabilityHandler constructs the handler with its collaborators.
func NewAvailabilityHandler(engine scheduling.AvailabilityEngine, estimator travel.Estimator, repo appointmentRepo.AppointmentRepository, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{
		Engine:    engine,
		Estimator: estimator,
		Repo:      repo,
		Logger:    logger,
	}
}

// GetAvailableSlots returns the bookable "HH:MM" start times for a
// provider's day, given the service duration and the new client's
// address.
func (h *AvailabilityHandler) GetAvailableSlots(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	address := c.Query("address")
	if providerID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameters", "providerId and date are required")
		return
	}

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid duration", "duration must be an integer number of minutes")
		return
	}

	mode := models.TransportationMode(c.DefaultQuery("mode", string(models.ModeDriving)))
	if !mode.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid transportation mode", string(mode))
		return
	}

	hours, ok := h.parseWorkingHours(c)
	if !ok {
		return
	}

	grace := config.AppConfig.GraceBufferMinutes
	if raw := c.Query("grace"); raw != "" {
		if grace, err = strconv.Atoi(raw); err != nil || grace < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid grace buffer", "grace must be a non-negative integer")
			return
		}
	}

	appointments, err := h.Repo.GetByProviderAndDate(c.Request.Context(), providerID, date)
	if err != nil {
		h.Logger.Error("failed to load appointments", zap.String("providerId", providerID), zap.String("date", date), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load appointments", "Please try again later")
		return
	}

	slots, err := h.Engine.AvailableSlots(c.Request.Context(), appointments, config.AppConfig.HomeBaseAddress, hours, duration, address, mode, grace)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Availability computation rejected input", err.Error())
		return
	}

	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = utils.FormatClock(s)
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": out})
}

// ValidateSlotRequest is the payload for validating one proposed start.
type ValidateSlotRequest struct {
	ProviderID      string `json:"providerId" binding:"required"`
	Date            string `json:"date" binding:"required"`
	RequestedStart  string `json:"requestedStart" binding:"required"` // "HH:MM"
	ServiceDuration int    `json:"serviceDuration" binding:"required"`
	Address         string `json:"address"`
	Mode            string `json:"mode"`
	Grace           *int   `json:"grace,omitempty"`
}

// ValidateSlot checks a single requested start time against the
// immediately preceding appointment of that day.
func (h *AvailabilityHandler) ValidateSlot(c *gin.Context) {
	var req ValidateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}
	if req.ServiceDuration <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service duration", "serviceDuration must be positive")
		return
	}

	requestedStart, err := utils.ParseClock(req.RequestedStart)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid requested start", err.Error())
		return
	}
	booking := models.BookingRequest{
		RequestedStart:  requestedStart,
		ServiceDuration: req.ServiceDuration,
	}

	mode := models.TransportationMode(req.Mode)
	if req.Mode == "" {
		mode = models.ModeDriving
	}
	if !mode.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid transportation mode", req.Mode)
		return
	}

	grace := config.AppConfig.GraceBufferMinutes
	if req.Grace != nil {
		grace = *req.Grace
	}

	appointments, err := h.Repo.GetByProviderAndDate(c.Request.Context(), req.ProviderID, req.Date)
	if err != nil {
		h.Logger.Error("failed to load appointments", zap.String("providerId", req.ProviderID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load appointments", "Please try again later")
		return
	}

	var previous *models.Appointment
	for i := range appointments {
		if appointments[i].End <= booking.RequestedStart {
			if previous == nil || appointments[i].End > previous.End {
				previous = &appointments[i]
			}
		}
	}

	travelMinutes := 0
	if previous != nil {
		est := h.Estimator.Estimate(c.Request.Context(), previous.Address, req.Address, mode)
		travelMinutes = travel.BufferMinutes(est, mode)
	}

	available := h.Engine.IsSlotAvailable(booking.RequestedStart, booking.ServiceDuration, previous, req.Address, travelMinutes, grace)
	c.JSON(http.StatusOK, gin.H{
		"available":     available,
		"travelMinutes": travelMinutes,
	})
}

// GetDepartureTime returns the latest "leave by" time for an arrival,
// using the same travel estimates the scheduler plans with.
func (h *AvailabilityHandler) GetDepartureTime(c *gin.Context) {
	arrivalStr := c.Query("arrival")
	origin := c.Query("origin")
	destination := c.Query("destination")
	if arrivalStr == "" || origin == "" || destination == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameters", "arrival, origin and destination are required")
		return
	}

	arrival, err := utils.ParseClock(arrivalStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid arrival time", err.Error())
		return
	}

	mode := models.TransportationMode(c.DefaultQuery("mode", string(models.ModeDriving)))
	if !mode.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid transportation mode", string(mode))
		return
	}

	est := h.Estimator.Estimate(c.Request.Context(), origin, destination, mode)
	travelMinutes := travel.BufferMinutes(est, mode)

	departure, err := scheduling.DepartureTime(arrival, travelMinutes)
	if err != nil {
		utils.JSONError(c, http.StatusUnprocessableEntity, "Departure not computable", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"departure":     utils.FormatClock(departure),
		"travelMinutes": travelMinutes,
	})
}

// parseWorkingHours reads the optional start/end query parameters,
// falling back to the configured working day.
func (h *AvailabilityHandler) parseWorkingHours(c *gin.Context) (models.WorkingHours, bool) {
	startStr := c.DefaultQuery("start", config.AppConfig.WorkDayStart)
	endStr := c.DefaultQuery("end", config.AppConfig.WorkDayEnd)

	start, err := utils.ParseClock(startStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid working hours start", err.Error())
		return models.WorkingHours{}, false
	}
	end, err := utils.ParseClock(endStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid working hours end", err.Error())
		return models.WorkingHours{}, false
	}
	return models.WorkingHours{Start: start, End: end}, true
}
