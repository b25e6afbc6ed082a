package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pickdateai/scheduler-api/internal/models"
)

func slot(id uint, startHour, startMin, endHour, endMin int) models.Appointment {
	return models.Appointment{
		ID:        id,
		StartTime: time.Date(2024, 1, 1, startHour, startMin, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 1, endHour, endMin, 0, 0, time.UTC),
		Status:    string(StatusScheduled),
	}
}

func TestHasTimeConflict_Overlaps(t *testing.T) {
	existing := []models.Appointment{slot(1, 10, 0, 11, 0)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"começa dentro", at(10, 30), at(11, 30), true},
		{"termina dentro", at(9, 30), at(10, 30), true},
		{"engloba", at(9, 0), at(12, 0), true},
		{"idêntico", at(10, 0), at(11, 0), true},
		{"contido", at(10, 15), at(10, 45), true},
		{"antes", at(9, 0), at(10, 0), false},
		{"depois", at(11, 0), at(12, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HasTimeConflict(tc.start, tc.end, 0, existing))
		})
	}
}

func TestHasTimeConflict_BackToBackIsFree(t *testing.T) {
	// fim de um encostando no início do outro não é conflito
	existing := []models.Appointment{slot(1, 10, 0, 11, 0), slot(2, 11, 0, 12, 0)}

	assert.False(t, HasTimeConflict(at(9, 0), at(10, 0), 0, existing))
	assert.False(t, HasTimeConflict(at(12, 0), at(13, 0), 0, existing))
}

func TestHasTimeConflict_ExcludeID(t *testing.T) {
	existing := []models.Appointment{slot(7, 10, 0, 11, 0)}

	// remarcação: o próprio agendamento não conflita consigo
	assert.False(t, HasTimeConflict(at(10, 0), at(11, 0), 7, existing))
	assert.True(t, HasTimeConflict(at(10, 0), at(11, 0), 99, existing))
}

func TestHasTimeConflict_Empty(t *testing.T) {
	assert.False(t, HasTimeConflict(at(10, 0), at(11, 0), 0, nil))
}
