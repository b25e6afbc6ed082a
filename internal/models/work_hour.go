package models

import "time"

// WorkHour descreve a janela de expediente de um dia da semana.
// Day guarda o nome do dia ("monday".."sunday"); horários em "HH:MM".
// BreakStart/BreakEnd vazios significam dia sem pausa.
type WorkHour struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	CollaboratorID uint `gorm:"index" json:"collaborator_id"`

	Day        string `gorm:"size:16;not null" json:"day"`
	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	BreakStart string `gorm:"size:5" json:"break_start"`
	BreakEnd   string `gorm:"size:5" json:"break_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
