package appointment

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/pickdateai/scheduler-api/internal/audit"
	"github.com/pickdateai/scheduler-api/internal/cache"
	domain "github.com/pickdateai/scheduler-api/internal/domain/schedule"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
	"github.com/pickdateai/scheduler-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	audit *audit.Dispatcher
	log   *logrus.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	availability *cache.AvailabilityCache,
	auditor *audit.Dispatcher,
	log *logrus.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		cache: availability,
		audit: auditor,
		log:   log,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	businessID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentForBusiness(ctx, appointmentID, businessID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(biz.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// horário liberado: a grade do dia mudou
	uc.cache.Invalidate(ctx, ap.CollaboratorID, ap.StartTime.In(timezone.Location(biz.Timezone)).Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		Action:     "appointment_canceled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	uc.log.WithField("appointment_id", ap.ID).Info("appointment canceled")

	return ap, nil
}
