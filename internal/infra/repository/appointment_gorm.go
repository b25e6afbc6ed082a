package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/pickdateai/scheduler-api/internal/domain/schedule"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	businessID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", serviceID, businessID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Collaborator
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCollaborator(
	ctx context.Context,
	businessID uint,
	collaboratorID uint,
) (*models.Collaborator, error) {

	var col models.Collaborator
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", collaboratorID, businessID).
		First(&col).Error; err != nil {
		return nil, err
	}
	return &col, nil
}

func (r *AppointmentGormRepository) GetDefaultCalendar(
	ctx context.Context,
	collaboratorID uint,
) (*models.Calendar, error) {

	var cal models.Calendar
	if err := r.db.WithContext(ctx).
		Where(`collaborator_id = ? AND "default" = ?`, collaboratorID, true).
		First(&cal).Error; err != nil {
		return nil, err
	}
	return &cal, nil
}

func (r *AppointmentGormRepository) ListWorkHours(
	ctx context.Context,
	collaboratorID uint,
) ([]models.WorkHour, error) {

	var hours []models.WorkHour
	if err := r.db.WithContext(ctx).
		Where("collaborator_id = ?", collaboratorID).
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	businessID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		BusinessID: businessID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// CreateAppointment insere com revalidação de conflito na mesma transação.
// O lock FOR UPDATE nas linhas concorrentes serializa duas reservas
// simultâneas do mesmo horário no banco.
func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"collaborator_id = ? AND status = ? AND start_time < ? AND end_time > ?",
				ap.CollaboratorID, string(domain.StatusScheduled), ap.EndTime, ap.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if domain.HasTimeConflict(ap.StartTime, ap.EndTime, 0, conflicts) {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

// --------------------------------------------------
// Appointment (Cancel / Complete)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentForBusiness(
	ctx context.Context,
	appointmentID uint,
	businessID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", appointmentID, businessID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListScheduledForDay(
	ctx context.Context,
	collaboratorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	// Mesmo predicado de sobreposição do CreateAppointment: um
	// agendamento que começa antes da janela mas invade ela ainda
	// bloqueia horários.
	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time").
		Where(
			"collaborator_id = ? AND status = ? AND start_time < ? AND end_time > ?",
			collaboratorID, string(domain.StatusScheduled), end, start,
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	collaboratorID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Collaborator").
		Where(
			"collaborator_id = ? AND start_time >= ? AND start_time < ?",
			collaboratorID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
