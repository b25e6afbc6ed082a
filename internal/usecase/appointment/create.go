package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pickdateai/scheduler-api/internal/audit"
	"github.com/pickdateai/scheduler-api/internal/cache"
	domain "github.com/pickdateai/scheduler-api/internal/domain/schedule"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
	"github.com/pickdateai/scheduler-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessID     uint
	CollaboratorID uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// false para a criação pelo painel (o próprio profissional
	// pode encaixar horários de última hora).
	EnforceMinAdvance bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	availability *cache.AvailabilityCache,
	auditor *audit.Dispatcher,
	log *logrus.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		cache: availability,
		audit: auditor,
		log:   log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(biz.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if in.EnforceMinAdvance {
		minAdvance := biz.MinAdvanceMinutes
		if minAdvance <= 0 {
			minAdvance = 120
		}

		now := timezone.NowIn(biz.Timezone)
		if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	end := start.Add(time.Duration(svc.DurationMin) * time.Minute)

	col, err := uc.repo.GetCollaborator(ctx, in.BusinessID, in.CollaboratorID)
	if err != nil {
		return nil, httperr.ErrBusiness("collaborator_not_found")
	}
	if !col.Active {
		return nil, httperr.ErrBusiness("collaborator_inactive")
	}

	workHours, err := uc.repo.ListWorkHours(ctx, col.ID)
	if err != nil {
		return nil, err
	}
	if !domain.IsCollaboratorAvailable(workHours, start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.BusinessID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	cal, err := uc.repo.GetDefaultCalendar(ctx, col.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("calendar_not_found")
	}

	ap := &models.Appointment{
		Reference:      uuid.NewString(),
		BusinessID:     in.BusinessID,
		CollaboratorID: col.ID,
		CalendarID:     cal.ID,
		ClientID:       client.ID,
		ServiceID:      svc.ID,
		StartTime:      start,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		Notes:          in.Notes,
	}

	// A revalidação de conflito roda dentro da transação do repositório.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, col.ID, start.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	uc.log.WithFields(logrus.Fields{
		"business_id":     in.BusinessID,
		"collaborator_id": col.ID,
		"appointment_id":  ap.ID,
		"start":           start,
	}).Info("appointment created")

	return ap, nil
}
