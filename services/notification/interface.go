package notification

import (
	"context"

	"roamly/models"
	"roamly/utils"

	"go.uber.org/zap"
)

// Notifier delivers departure reminders to the provider. Actual push
// transport lives outside this service; implementations adapt whatever
// channel the deployment uses.
type Notifier interface {
	SendDepartureReminder(ctx context.Context, payload models.ReminderPayload) error
}

// LogNotifier is the default Notifier: it records the reminder in the
// application log. Useful in development and as a delivery stub.
type LogNotifier struct {
	Logger *zap.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{Logger: utils.GetLogger()}
}

func (n *LogNotifier) SendDepartureReminder(_ context.Context, payload models.ReminderPayload) error {
	n.Logger.Info("departure reminder",
		zap.String("appointmentId", payload.AppointmentID),
		zap.String("client", payload.ClientName),
		zap.String("address", payload.Address),
		zap.String("departBy", payload.DepartBy),
		zap.String("body", payload.Body))
	return nil
}
