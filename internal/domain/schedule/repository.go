package schedule

import (
	"context"
	"time"

	"github.com/pickdateai/scheduler-api/internal/models"
)

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		businessID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Collaborator --------
	GetCollaborator(
		ctx context.Context,
		businessID uint,
		collaboratorID uint,
	) (*models.Collaborator, error)

	GetDefaultCalendar(
		ctx context.Context,
		collaboratorID uint,
	) (*models.Calendar, error)

	ListWorkHours(
		ctx context.Context,
		collaboratorID uint,
	) ([]models.WorkHour, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		businessID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment insere o agendamento dentro de uma transação,
	// revalidando conflito com lock nas linhas concorrentes.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBusiness(
		ctx context.Context,
		appointmentID uint,
		businessID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListScheduledForDay(
		ctx context.Context,
		collaboratorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		collaboratorID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
