package models

import "time"

// Profissional com janela de expediente própria (nunca constante global)
type Professional struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// "HH:MM", StartWork < EndWork
	StartWork string `gorm:"size:5;default:'10:00'" json:"start_work"`
	EndWork   string `gorm:"size:5;default:'18:00'" json:"end_work"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
