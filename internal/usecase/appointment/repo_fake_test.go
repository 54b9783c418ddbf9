package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/models"
)

// fakeRepo implementa domain.Repository em memória. A reserva é
// serializada por mutex para reproduzir a atomicidade do banco.
type fakeRepo struct {
	mu sync.Mutex

	company  models.Company
	services map[uint]models.Service
	hours    map[int]models.OperatingHours
	clients  map[uint]models.Client

	appointments []models.Appointment
	nextApID     uint
	nextClientID uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		company:      models.Company{ID: 1, Name: "Studio Teste", Slug: "studio-teste"},
		services:     make(map[uint]models.Service),
		hours:        make(map[int]models.OperatingHours),
		clients:      make(map[uint]models.Client),
		nextApID:     1,
		nextClientID: 1,
	}
}

func (f *fakeRepo) addService(id uint, name string, durationMin int, priceCents int64) {
	f.services[id] = models.Service{
		ID:          id,
		CompanyID:   f.company.ID,
		Name:        name,
		DurationMin: durationMin,
		PriceCents:  priceCents,
		Active:      true,
	}
}

func (f *fakeRepo) openDay(weekday int, start, end string) {
	f.hours[weekday] = models.OperatingHours{
		CompanyID: f.company.ID,
		Weekday:   weekday,
		Active:    true,
		StartTime: start,
		EndTime:   end,
	}
}

func (f *fakeRepo) GetCompanyByID(ctx context.Context, id uint) (*models.Company, error) {
	if id != f.company.ID {
		return nil, errors.New("company not found")
	}
	c := f.company
	return &c, nil
}

func (f *fakeRepo) GetServices(ctx context.Context, companyID uint, serviceIDs []uint) ([]models.Service, error) {
	out := make([]models.Service, 0, len(serviceIDs))
	for _, id := range serviceIDs {
		if s, ok := f.services[id]; ok && s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOrCreateClient(ctx context.Context, companyID uint, name, phone, email string) (*models.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.clients {
		if c.CompanyID == companyID && c.Phone == phone {
			existing := c
			return &existing, nil
		}
	}

	c := models.Client{
		ID:        f.nextClientID,
		CompanyID: companyID,
		Name:      name,
		Phone:     phone,
		Email:     email,
	}
	f.nextClientID++
	f.clients[c.ID] = c
	return &c, nil
}

func (f *fakeRepo) GetClient(ctx context.Context, companyID, clientID uint) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok || c.CompanyID != companyID {
		return nil, errors.New("client not found")
	}
	return &c, nil
}

func (f *fakeRepo) ReserveAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.appointments {
		if existing.CompanyID != ap.CompanyID || existing.StaffID != ap.StaffID {
			continue
		}
		if existing.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.StartTime.Before(existing.EndTime) && ap.EndTime.After(existing.StartTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	ap.ID = f.nextApID
	f.nextApID++
	f.appointments = append(f.appointments, *ap)
	return nil
}

func (f *fakeRepo) GetAppointmentForStaff(ctx context.Context, appointmentID, staffID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.appointments {
		if f.appointments[i].ID == appointmentID && f.appointments[i].StaffID == staffID {
			ap := f.appointments[i]
			return &ap, nil
		}
	}
	return nil, errors.New("appointment not found")
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.appointments {
		if f.appointments[i].ID == ap.ID {
			f.appointments[i] = *ap
			return nil
		}
	}
	return errors.New("appointment not found")
}

func (f *fakeRepo) GetOperatingHours(ctx context.Context, companyID uint, weekday int) (*models.OperatingHours, error) {
	oh, ok := f.hours[weekday]
	if !ok {
		return nil, errors.New("no operating hours")
	}
	return &oh, nil
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, companyID, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.listPeriod(companyID, staffID, start, end), nil
}

func (f *fakeRepo) IsWithinOperatingHours(ctx context.Context, companyID uint, start, end time.Time) (bool, error) {
	oh, ok := f.hours[int(start.Weekday())]
	if !ok || !oh.Active || oh.StartTime == "" || oh.EndTime == "" {
		return false, nil
	}

	dayAt := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(start.Year(), start.Month(), start.Day(), t.Hour(), t.Minute(), 0, 0, start.Location())
	}

	return !start.Before(dayAt(oh.StartTime)) && !end.After(dayAt(oh.EndTime)), nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, companyID, staffID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.listPeriod(companyID, staffID, start, end), nil
}

func (f *fakeRepo) ListAppointmentsForClient(ctx context.Context, companyID, clientID uint) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.CompanyID == companyID && ap.ClientID != nil && *ap.ClientID == clientID {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (f *fakeRepo) listPeriod(companyID, staffID uint, start, end time.Time) []models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]models.Appointment, 0)
	for _, ap := range f.appointments {
		if ap.CompanyID != companyID || ap.StaffID != staffID {
			continue
		}
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		if ap.StartTime.Before(end) && ap.EndTime.After(start) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}
