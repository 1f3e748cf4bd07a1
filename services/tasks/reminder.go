package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"roamly/config"
	"roamly/models"
	"roamly/services/scheduling"
	"roamly/services/travel"
	"roamly/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeDepartureReminder = "reminder:departure"

// NewDepartureReminderTask builds the asynq task for a departure
// reminder scheduled at fireAt.
func NewDepartureReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDepartureReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues "leave by" reminders for new appointments.
// The departure time reuses the same travel estimate the availability
// engine plans with.
type ReminderScheduler struct {
	Client      *asynq.Client
	Estimator   travel.Estimator
	LeadMinutes int
	Logger      *zap.Logger
}

// NewReminderScheduler constructs a scheduler backed by the reminder
// queue's Redis DB.
func NewReminderScheduler(estimator travel.Estimator) *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &ReminderScheduler{
		Client:      client,
		Estimator:   estimator,
		LeadMinutes: config.AppConfig.DepartureReminderLeadMinutes,
		Logger:      utils.GetLogger(),
	}
}

// ScheduleForAppointment computes when the provider must leave origin to
// reach the appointment and enqueues a reminder LeadMinutes before that
// departure. Appointments whose departure cannot be computed (midnight
// underflow) are skipped, not failed.
func (s *ReminderScheduler) ScheduleForAppointment(ctx context.Context, appt models.Appointment, origin string, mode models.TransportationMode) error {
	est := s.Estimator.Estimate(ctx, origin, appt.Address, mode)
	travelMinutes := travel.BufferMinutes(est, mode)

	departure, err := scheduling.DepartureTime(appt.Start, travelMinutes)
	if err != nil {
		s.Logger.Warn("skipping departure reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
		return nil
	}

	day, err := time.ParseInLocation("2006-01-02", appt.Date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid appointment date %q: %w", appt.Date, err)
	}
	fireAt := day.Add(time.Duration(departure-s.LeadMinutes) * time.Minute)

	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		ClientName:    appt.ClientName,
		Address:       appt.Address,
		Date:          appt.Date,
		DepartBy:      utils.FormatClock(departure),
		Title:         "Time to head out soon",
		Body:          fmt.Sprintf("Leave by %s to reach %s on time.", utils.FormatClock(departure), appt.Address),
	}

	task, opts, err := NewDepartureReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue departure reminder: %w", err)
	}
	s.Logger.Info("departure reminder scheduled",
		zap.String("appointmentId", appt.ID),
		zap.String("departBy", payload.DepartBy),
		zap.Time("fireAt", fireAt))
	return nil
}
