package models

import "time"

// Profissional que atende os agendamentos. Pode ou não ter conta de acesso.
type Collaborator struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Phone  string `gorm:"size:20" json:"phone"`
	Title  string `gorm:"size:50" json:"title"`
	Active bool   `gorm:"default:true" json:"active"`

	WorkHours []WorkHour `gorm:"constraint:OnDelete:CASCADE;" json:"work_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
