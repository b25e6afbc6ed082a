package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pickdateai/scheduler-api/internal/models"
)

// newTestDB abre um sqlite em memória com o schema completo.
// Pool limitado a 1 conexão: cada conexão nova teria um banco vazio.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Collaborator{},
		&models.WorkHour{},
		&models.Calendar{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.Combo{},
		&models.ComboService{},
		&models.ClientCombo{},
		&models.ClientComboSession{},
		&models.AuditLog{},
	))

	return db
}

// seedBusiness cria o conjunto mínimo: negócio, colaborador com
// calendário padrão, serviço e cliente.
type seed struct {
	Business     models.Business
	Collaborator models.Collaborator
	Calendar     models.Calendar
	Service      models.Service
	Client       models.Client
}

func seedBusiness(t *testing.T, db *gorm.DB) seed {
	t.Helper()

	s := seed{
		Business: models.Business{
			Name:     "Studio Bela",
			Slug:     "studio-bela",
			Timezone: "America/Sao_Paulo",
		},
	}
	require.NoError(t, db.Create(&s.Business).Error)

	s.Collaborator = models.Collaborator{
		BusinessID: s.Business.ID,
		Name:       "Ana",
		Active:     true,
	}
	require.NoError(t, db.Create(&s.Collaborator).Error)

	s.Calendar = models.Calendar{
		BusinessID:     s.Business.ID,
		CollaboratorID: s.Collaborator.ID,
		Name:           "Agenda principal",
		Default:        true,
	}
	require.NoError(t, db.Create(&s.Calendar).Error)

	s.Service = models.Service{
		BusinessID:  s.Business.ID,
		Name:        "Corte",
		DurationMin: 60,
		Price:       80,
		Active:      true,
	}
	require.NoError(t, db.Create(&s.Service).Error)

	s.Client = models.Client{
		BusinessID: s.Business.ID,
		Name:       "João",
		Phone:      "11999990000",
	}
	require.NoError(t, db.Create(&s.Client).Error)

	return s
}
