package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickdateai/scheduler-api/internal/models"
)

// monday 2024-01-01
func at(hour, min int) time.Time {
	return time.Date(2024, 1, 1, hour, min, 0, 0, time.UTC)
}

func mondayWithBreak() []models.WorkHour {
	return []models.WorkHour{
		{
			Day:        "monday",
			StartTime:  "09:00",
			EndTime:    "18:00",
			BreakStart: "12:00",
			BreakEnd:   "13:00",
		},
	}
}

func TestIsCollaboratorAvailable_InsideWindow(t *testing.T) {
	wh := mondayWithBreak()

	assert.True(t, IsCollaboratorAvailable(wh, at(9, 0), at(9, 30)))
	assert.True(t, IsCollaboratorAvailable(wh, at(10, 0), at(11, 0)))
	assert.True(t, IsCollaboratorAvailable(wh, at(17, 30), at(18, 0)))
}

func TestIsCollaboratorAvailable_OutsideWindow(t *testing.T) {
	wh := mondayWithBreak()

	assert.False(t, IsCollaboratorAvailable(wh, at(8, 30), at(9, 0)), "antes do expediente")
	assert.False(t, IsCollaboratorAvailable(wh, at(17, 45), at(18, 15)), "estoura o fim")
	assert.False(t, IsCollaboratorAvailable(wh, at(18, 0), at(19, 0)), "depois do expediente")
}

func TestIsCollaboratorAvailable_Break(t *testing.T) {
	wh := mondayWithBreak()

	assert.False(t, IsCollaboratorAvailable(wh, at(12, 0), at(12, 30)), "dentro da pausa")
	assert.False(t, IsCollaboratorAvailable(wh, at(11, 30), at(12, 15)), "invade a pausa")
	assert.False(t, IsCollaboratorAvailable(wh, at(12, 45), at(13, 30)), "sai da pausa")
	assert.False(t, IsCollaboratorAvailable(wh, at(11, 0), at(14, 0)), "engloba a pausa")

	// encostar na pausa é permitido
	assert.True(t, IsCollaboratorAvailable(wh, at(11, 0), at(12, 0)))
	assert.True(t, IsCollaboratorAvailable(wh, at(13, 0), at(14, 0)))
}

func TestIsCollaboratorAvailable_NoBreak(t *testing.T) {
	wh := []models.WorkHour{
		{Day: "monday", StartTime: "09:00", EndTime: "18:00"},
	}

	assert.True(t, IsCollaboratorAvailable(wh, at(12, 0), at(13, 0)))
}

func TestIsCollaboratorAvailable_DayClosed(t *testing.T) {
	// expediente cadastrado só para terça: segunda é dia fechado
	wh := []models.WorkHour{
		{Day: "tuesday", StartTime: "09:00", EndTime: "18:00"},
	}

	assert.False(t, IsCollaboratorAvailable(wh, at(10, 0), at(11, 0)))
}

func TestIsCollaboratorAvailable_EmptyTimesMeanClosed(t *testing.T) {
	wh := []models.WorkHour{
		{Day: "monday", StartTime: "", EndTime: ""},
	}

	assert.False(t, IsCollaboratorAvailable(wh, at(10, 0), at(11, 0)))
}

func TestIsCollaboratorAvailable_NoWorkHoursIsPermissive(t *testing.T) {
	// colaborador sem expediente cadastrado aceita qualquer horário
	assert.True(t, IsCollaboratorAvailable(nil, at(3, 0), at(4, 0)))
	assert.True(t, IsCollaboratorAvailable([]models.WorkHour{}, at(23, 0), at(23, 30)))
}

func TestWorkHourForDay_CaseInsensitive(t *testing.T) {
	wh := []models.WorkHour{
		{Day: "Monday", StartTime: "09:00", EndTime: "18:00"},
	}

	got := WorkHourForDay(wh, at(10, 0))
	require.NotNil(t, got)
	assert.Equal(t, "Monday", got.Day)
}
