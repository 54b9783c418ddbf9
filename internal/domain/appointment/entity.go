package appointment

import "time"

type AvailabilityInput struct {
	CompanyID  uint
	StaffID    uint
	ServiceIDs []uint
	Date       time.Time
}

// GridStep é o passo fixo da grade de horários. Os candidatos são sempre
// alinhados ao horário de abertura, independente da duração do serviço.
const GridStep = 30 * time.Minute
