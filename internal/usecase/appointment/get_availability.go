package appointment

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pickdateai/scheduler-api/internal/cache"
	domain "github.com/pickdateai/scheduler-api/internal/domain/schedule"
	"github.com/pickdateai/scheduler-api/internal/httperr"
)

type GetAvailability struct {
	repo  domain.Repository
	cache *cache.AvailabilityCache
	log   *logrus.Logger
}

func NewGetAvailability(
	repo domain.Repository,
	availability *cache.AvailabilityCache,
	log *logrus.Logger,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: availability,
		log:   log,
	}
}

// Execute monta a grade de horários livres do colaborador para o dia,
// andando pela janela de expediente em passos da duração do serviço.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	dateKey := in.Date.Format("2006-01-02")

	if slots, ok := uc.cache.Get(ctx, in.CollaboratorID, dateKey, in.ServiceID); ok {
		return slots, nil
	}

	svc, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	workHours, err := uc.repo.ListWorkHours(ctx, in.CollaboratorID)
	if err != nil {
		return nil, err
	}

	wh := domain.WorkHourForDay(workHours, in.Date)
	if wh == nil || wh.StartTime == "" || wh.EndTime == "" {
		return []domain.TimeSlot{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(wh.StartTime)
	dayEnd := parseHM(wh.EndTime)

	hasBreak := wh.BreakStart != "" && wh.BreakEnd != ""
	var breakStart, breakEnd time.Time
	if hasBreak {
		breakStart = parseHM(wh.BreakStart)
		breakEnd = parseHM(wh.BreakEnd)
	}

	appointments, err := uc.repo.ListScheduledForDay(
		ctx,
		in.CollaboratorID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	slotDuration := time.Duration(svc.DurationMin) * time.Minute
	slots := []domain.TimeSlot{}

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if hasBreak && slotStart.Before(breakEnd) && slotEnd.After(breakStart) {
			continue
		}

		if domain.HasTimeConflict(slotStart, slotEnd, 0, appointments) {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Start: slotStart.Format("15:04"),
			End:   slotEnd.Format("15:04"),
		})
	}

	uc.cache.Set(ctx, in.CollaboratorID, dateKey, in.ServiceID, slots)

	return slots, nil
}
