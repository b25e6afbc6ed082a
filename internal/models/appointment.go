package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex" json:"reference"`

	BusinessID uint     `json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"business"`

	CollaboratorID uint         `json:"collaborator_id"`
	Collaborator   Collaborator `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"collaborator"`

	CalendarID uint     `json:"calendar_id"`
	Calendar   Calendar `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"calendar"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CanceledAt  *time.Time `json:"canceled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
