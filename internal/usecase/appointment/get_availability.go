package appointment

import (
	"context"
	"time"

	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{
		repo: repo,
		now:  timezone.Now,
	}
}

// Execute devolve os horários de início livres do dia, em ordem
// crescente, no formato HH:mm. A grade é fixa em passos de 30 minutos a
// partir da abertura; a duração somada dos serviços só decide se o
// candidato cabe antes do fechamento.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("missing_services")
	}

	serviceIDs := dedupeIDs(in.ServiceIDs)

	services, err := uc.repo.GetServices(ctx, in.CompanyID, serviceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(serviceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	totalMin := 0
	for _, s := range services {
		totalMin += s.DurationMin
	}
	totalDuration := time.Duration(totalMin) * time.Minute

	weekday := int(in.Date.Weekday())

	oh, err := uc.repo.GetOperatingHours(ctx, in.CompanyID, weekday)
	if err != nil || !oh.Active || oh.StartTime == "" || oh.EndTime == "" {
		// Dia fechado não é erro: lista vazia.
		return []string{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(oh.StartTime)
	dayEnd := parseHM(oh.EndTime)
	if !dayEnd.After(dayStart) {
		return []string{}, nil
	}

	midnight := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)

	appointments, err := uc.repo.ListAppointmentsForDay(
		ctx,
		in.CompanyID,
		in.StaffID,
		midnight,
		midnight.Add(24*time.Hour),
	)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	slots := make([]string, 0)

	apIdx := 0

	for cur := dayStart; !cur.Add(totalDuration).After(dayEnd); cur = cur.Add(domain.GridStep) {

		slotStart := cur
		slotEnd := cur.Add(totalDuration)

		// horários já passados não são ofertados
		if slotStart.Before(now) {
			continue
		}

		// avança agendamentos já encerrados antes do candidato
		for apIdx < len(appointments) && !appointments[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		for i := apIdx; i < len(appointments); i++ {
			ap := appointments[i]
			if !ap.StartTime.Before(slotEnd) {
				break
			}
			if slotStart.Before(ap.EndTime) && slotEnd.After(ap.StartTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, slotStart.Format("15:04"))
		}
	}

	return slots, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
