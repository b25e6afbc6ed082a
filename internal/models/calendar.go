package models

import "time"

// Superfície de agenda vinculada a um colaborador.
// Cada colaborador recebe um calendário padrão na criação.
type Calendar struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	BusinessID     uint `gorm:"index" json:"business_id"`
	CollaboratorID uint `gorm:"index" json:"collaborator_id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Default bool   `gorm:"default:false" json:"default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
