package models

import "time"

// Uma linha por (empresa, dia da semana). Weekday: 0=domingo .. 6=sábado.
type OperatingHours struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CompanyID uint `gorm:"uniqueIndex:idx_company_weekday" json:"company_id"`

	Weekday int `gorm:"uniqueIndex:idx_company_weekday" json:"weekday"`

	Active    bool   `json:"active"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	// Intervalo de almoço: persistido e exposto, mas não entra no cálculo
	// de disponibilidade.
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
