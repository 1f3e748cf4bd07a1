package routes

import (
	"net/http"
	"time"

	"roamly/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the slot availability endpoints.
func RegisterAvailabilityRoutes(r *gin.Engine, h *handlers.AvailabilityHandler) {
	api := r.Group("/api/availability")
	{
		api.GET("", h.GetAvailableSlots)
		api.POST("/validate", h.ValidateSlot)
	}
	r.GET("/api/departure", h.GetDepartureTime)
}

// RegisterAppointmentRoutes registers the appointment store endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, h *handlers.AppointmentHandler) {
	api := r.Group("/api/appointments")
	{
		api.POST("", h.CreateAppointment)
		api.GET("", h.ListAppointments)
		api.DELETE("/:id", h.DeleteAppointment)
	}
}

// RegisterRoutes wires CORS, health and all endpoint groups.
func RegisterRoutes(r *gin.Engine, availability *handlers.AvailabilityHandler, appointments *handlers.AppointmentHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	RegisterAvailabilityRoutes(r, availability)
	RegisterAppointmentRoutes(r, appointments)
}
