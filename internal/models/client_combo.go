package models

import "time"

// ClientCombo é a instância de um combo vendida a um cliente.
// ComboName é um retrato do nome no momento da venda: renomear o
// template depois não reescreve o histórico do cliente.
type ClientCombo struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	// Nulo após o desvínculo do template.
	ComboID *uint `gorm:"index" json:"combo_id"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	ComboName  string  `gorm:"size:100;not null" json:"combo_name"`
	AmountPaid float64 `json:"amount_paid"`

	Status    string     `gorm:"size:20;default:'active'" json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`

	Sessions []ClientComboSession `gorm:"constraint:OnDelete:CASCADE;" json:"sessions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientComboSession é o contador de sessões de um serviço dentro do
// combo do cliente. ServiceName é retrato, como ComboName.
type ClientComboSession struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ClientComboID uint `gorm:"index" json:"client_combo_id"`

	ServiceID   uint   `json:"service_id"`
	ServiceName string `gorm:"size:100;not null" json:"service_name"`

	TotalSessions int `gorm:"not null" json:"total_sessions"`
	UsedSessions  int `gorm:"not null;default:0" json:"used_sessions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
