package handlers

import (
	"net/http"

	"roamly/config"
	appointmentRepo "roamly/database/repository/appointment"
	"roamly/models"
	"roamly/services/tasks"
	"roamly/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AppointmentHandler exposes the appointment store feeding the
// availability engine.
type AppointmentHandler struct {
	Repo      appointmentRepo.AppointmentRepository
	Reminders *tasks.ReminderScheduler
	Logger    *zap.Logger
}

// NewAppointmentHandler constructs the handler.
func NewAppointmentHandler(repo appointmentRepo.AppointmentRepository, reminders *tasks.ReminderScheduler, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		Repo:      repo,
		Reminders: reminders,
		Logger:    logger,
	}
}

// CreateAppointmentRequest carries "HH:MM" times at the boundary.
type CreateAppointmentRequest struct {
	ProviderID string `json:"providerId" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Start      string `json:"start" binding:"required"`
	End        string `json:"end" binding:"required"`
	Address    string `json:"address" binding:"required"`
	ClientName string `json:"clientName"`
	Service    string `json:"service"`
	Mode       string `json:"mode"`
}

// CreateAppointment stores a confirmed appointment and schedules the
// provider's departure reminder for it.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	start, err := utils.ParseClock(req.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid start time", err.Error())
		return
	}
	end, err := utils.ParseClock(req.End)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid end time", err.Error())
		return
	}
	if start >= end {
		utils.JSONError(c, http.StatusBadRequest, "Invalid appointment window", "start must precede end")
		return
	}

	mode := models.TransportationMode(req.Mode)
	if req.Mode == "" {
		mode = models.ModeDriving
	}
	if !mode.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid transportation mode", req.Mode)
		return
	}

	appt := models.Appointment{
		ProviderID: req.ProviderID,
		Date:       req.Date,
		Start:      start,
		End:        end,
		Address:    req.Address,
		ClientName: req.ClientName,
		Service:    req.Service,
	}
	if err := h.Repo.Create(c.Request.Context(), &appt); err != nil {
		h.Logger.Error("failed to create appointment", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create appointment", "Please try again later")
		return
	}

	// The provider departs from the appointment that ends last before
	// this one, or from home base for the first job of the day.
	origin := config.AppConfig.HomeBaseAddress
	if day, err := h.Repo.GetByProviderAndDate(c.Request.Context(), req.ProviderID, req.Date); err == nil {
		for i := range day {
			if day[i].ID != appt.ID && day[i].End <= appt.Start {
				origin = day[i].Address
			}
		}
	}

	if h.Reminders != nil {
		if err := h.Reminders.ScheduleForAppointment(c.Request.Context(), appt, origin, mode); err != nil {
			// The booking stands even when the reminder cannot be queued.
			h.Logger.Warn("failed to schedule departure reminder", zap.String("appointmentId", appt.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, appt)
}

// ListAppointments returns a provider's day in chronological order.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	providerID := c.Query("providerId")
	date := c.Query("date")
	if providerID == "" || date == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameters", "providerId and date are required")
		return
	}

	appts, err := h.Repo.GetByProviderAndDate(c.Request.Context(), providerID, date)
	if err != nil {
		h.Logger.Error("failed to list appointments", zap.String("providerId", providerID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to list appointments", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// DeleteAppointment removes an appointment by ID.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id := c.Param("id")
	if err := h.Repo.DeleteByID(c.Request.Context(), id); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.JSONError(c, http.StatusNotFound, "Appointment not found", id)
			return
		}
		h.Logger.Error("failed to delete appointment", zap.String("id", id), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Failed to delete appointment", "Please try again later")
		return
	}
	c.Status(http.StatusNoContent)
}
