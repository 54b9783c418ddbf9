package dto

import (
	"time"

	"github.com/marcou-app/marcou/internal/models"
)

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	ClientName      string    `json:"client_name"`
	ServiceLabel    string    `json:"service_label"`
	TotalPriceCents int64     `json:"total_price_cents"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	name := ap.WalkInName
	if ap.ClientID != nil {
		name = ap.Client.Name
	}

	return AppointmentListDTO{
		ID:              ap.ID,
		StartTime:       ap.StartTime,
		EndTime:         ap.EndTime,
		Status:          ap.Status,
		ClientName:      name,
		ServiceLabel:    ap.ServiceLabel,
		TotalPriceCents: ap.TotalPriceCents,
	}
}
