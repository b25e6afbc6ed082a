package models

import "time"

// Combo é o modelo (template) de pacote de serviços vendido com desconto.
type Combo struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	Services []ComboService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComboService define quantas sessões de um serviço o combo inclui.
type ComboService struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	ComboID uint `gorm:"index" json:"combo_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Quantity int `gorm:"not null" json:"quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
