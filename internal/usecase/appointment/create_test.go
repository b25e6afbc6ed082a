package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pickdateai/scheduler-api/internal/audit"
	domain "github.com/pickdateai/scheduler-api/internal/domain/schedule"
	"github.com/pickdateai/scheduler-api/internal/httperr"
	"github.com/pickdateai/scheduler-api/internal/models"
)

// fakeRepo guarda tudo em memória e reproduz a revalidação de
// conflito que o repositório real faz na transação.
type fakeRepo struct {
	business     models.Business
	service      models.Service
	collaborator models.Collaborator
	calendar     models.Calendar
	workHours    []models.WorkHour

	clients      []models.Client
	appointments []models.Appointment
	nextID       uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		business: models.Business{
			ID:                1,
			Name:              "Studio Bela",
			Slug:              "studio-bela",
			Timezone:          "UTC",
			MinAdvanceMinutes: 120,
		},
		service: models.Service{
			ID: 5, BusinessID: 1, Name: "Corte", DurationMin: 60, Active: true,
		},
		collaborator: models.Collaborator{
			ID: 3, BusinessID: 1, Name: "Ana", Active: true,
		},
		calendar: models.Calendar{
			ID: 7, BusinessID: 1, CollaboratorID: 3, Default: true,
		},
		nextID: 1,
	}
}

func (f *fakeRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	if id != f.business.ID {
		return nil, gorm.ErrRecordNotFound
	}
	biz := f.business
	return &biz, nil
}

func (f *fakeRepo) GetService(_ context.Context, businessID, serviceID uint) (*models.Service, error) {
	if businessID != f.business.ID || serviceID != f.service.ID {
		return nil, gorm.ErrRecordNotFound
	}
	svc := f.service
	return &svc, nil
}

func (f *fakeRepo) GetCollaborator(_ context.Context, businessID, collaboratorID uint) (*models.Collaborator, error) {
	if businessID != f.business.ID || collaboratorID != f.collaborator.ID {
		return nil, gorm.ErrRecordNotFound
	}
	col := f.collaborator
	return &col, nil
}

func (f *fakeRepo) GetDefaultCalendar(_ context.Context, collaboratorID uint) (*models.Calendar, error) {
	if collaboratorID != f.calendar.CollaboratorID {
		return nil, gorm.ErrRecordNotFound
	}
	cal := f.calendar
	return &cal, nil
}

func (f *fakeRepo) ListWorkHours(_ context.Context, _ uint) ([]models.WorkHour, error) {
	return f.workHours, nil
}

func (f *fakeRepo) GetOrCreateClient(_ context.Context, businessID uint, name, phone, email string) (*models.Client, error) {
	for i := range f.clients {
		if f.clients[i].Phone == phone {
			return &f.clients[i], nil
		}
	}
	c := models.Client{ID: f.nextID, BusinessID: businessID, Name: name, Phone: phone, Email: email}
	f.nextID++
	f.clients = append(f.clients, c)
	return &c, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	var scheduled []models.Appointment
	for _, a := range f.appointments {
		if a.CollaboratorID == ap.CollaboratorID && a.Status == string(domain.StatusScheduled) {
			scheduled = append(scheduled, a)
		}
	}
	if domain.HasTimeConflict(ap.StartTime, ap.EndTime, 0, scheduled) {
		return httperr.ErrBusiness("time_conflict")
	}

	ap.ID = f.nextID
	f.nextID++
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForBusiness(_ context.Context, appointmentID, businessID uint) (*models.Appointment, error) {
	for i := range f.appointments {
		if f.appointments[i].ID == appointmentID && f.appointments[i].BusinessID == businessID {
			ap := f.appointments[i]
			return &ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeRepo) ListScheduledForDay(_ context.Context, collaboratorID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.CollaboratorID == collaboratorID &&
			a.Status == string(domain.StatusScheduled) &&
			a.StartTime.Before(end) && a.EndTime.After(start) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, collaboratorID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.CollaboratorID == collaboratorID &&
			!a.StartTime.Before(start) && a.StartTime.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newCreateUC(repo domain.Repository) *CreateAppointment {
	log := silentLogger()
	return NewCreateAppointment(repo, nil, audit.NewDispatcher(audit.New(nil), log), log)
}

func futureDate() string {
	// segunda-feira bem à frente, para nunca esbarrar na antecedência mínima
	d := time.Now().UTC().AddDate(0, 0, 14)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func baseInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		BusinessID:     1,
		CollaboratorID: 3,
		ServiceID:      5,
		ClientName:     "João",
		ClientPhone:    "11999990000",
		Date:           futureDate(),
		Time:           "10:00",
	}
}

func TestCreateAppointment_HappyPath(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	ap, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	assert.NotEmpty(t, ap.Reference)
	assert.Equal(t, string(domain.StatusScheduled), ap.Status)
	assert.Equal(t, uint(7), ap.CalendarID)
	assert.Equal(t, time.Hour, ap.EndTime.Sub(ap.StartTime), "fim = início + duração do serviço")
	require.Len(t, repo.clients, 1, "cliente criado pelo telefone")
}

func TestCreateAppointment_ReusesClientByPhone(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	first, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	in := baseInput()
	in.Time = "14:00"
	in.ClientName = "João Silva" // nome diferente, mesmo telefone
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first.ClientID, second.ClientID)
	assert.Len(t, repo.clients, 1)
}

func TestCreateAppointment_Conflict(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	in := baseInput()
	in.Time = "10:30"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateAppointment_OutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	repo.workHours = []models.WorkHour{
		{Day: "monday", StartTime: "09:00", EndTime: "18:00", BreakStart: "12:00", BreakEnd: "13:00"},
	}
	uc := newCreateUC(repo)

	in := baseInput()
	in.Time = "08:00"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	in.Time = "12:30" // pausa de almoço
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))

	in.Time = "10:00"
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateAppointment_MinAdvance(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	soon := time.Now().UTC().Add(30 * time.Minute)

	in := baseInput()
	in.Date = soon.Format("2006-01-02")
	in.Time = soon.Format("15:04")
	in.EnforceMinAdvance = true

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "too_soon"))

	// o painel ignora a antecedência mínima
	in.EnforceMinAdvance = false
	_, err = uc.Execute(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateAppointment_InactiveCollaborator(t *testing.T) {
	repo := newFakeRepo()
	repo.collaborator.Active = false
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, httperr.IsBusiness(err, "collaborator_inactive"))
}

func TestCreateAppointment_InvalidTime(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	in := baseInput()
	in.Time = "25:99"
	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}
