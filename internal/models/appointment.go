package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CompanyID uint    `gorm:"index:idx_appointments_staff_day" json:"company_id"`
	Company   Company `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	StaffID uint `gorm:"index:idx_appointments_staff_day" json:"staff_id"`
	Staff   User `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	// Exatamente um dos dois identifica quem agendou: cliente registrado
	// ou nome livre de walk-in.
	ClientID   *uint  `json:"client_id"`
	Client     Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`
	WalkInName string `gorm:"size:100" json:"walk_in_name"`

	Services []Service `gorm:"many2many:appointment_services;" json:"services"`

	// Nomes dos serviços concatenados + totais somados.
	ServiceLabel    string `gorm:"size:255" json:"service_label"`
	TotalPriceCents int64  `json:"total_price_cents"`

	StartTime time.Time `gorm:"index:idx_appointments_staff_day" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
