package appointmentRepo

import (
	"context"

	"roamly/database"
	"roamly/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AppointmentRepository owns persistence of the provider's confirmed
// appointments. GetByProviderAndDate returns the day in chronological
// order, which the availability engine requires.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	GetByProviderAndDate(ctx context.Context, providerID, date string) ([]models.Appointment, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database("roamly")
	return &mongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}
