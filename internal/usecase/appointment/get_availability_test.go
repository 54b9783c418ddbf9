package appointment

import (
	"context"
	"reflect"
	"testing"
	"time"

	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/models"
)

// Segunda-feira, 2 de março de 2026.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newAvailabilityUC(repo *fakeRepo) *GetAvailability {
	uc := NewGetAvailability(repo)
	// relógio congelado bem antes do dia testado
	uc.now = fixedClock(monday.AddDate(0, -1, 0))
	return uc
}

func TestAvailabilityClosedDayReturnsEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", 30, 5000)
	// nenhum horário cadastrado para segunda

	uc := newAvailabilityUC(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1},
		Date:       monday,
	})
	if err != nil {
		t.Fatalf("expected no error for closed day, got %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty slots for closed day, got %v", slots)
	}
}

func TestAvailabilityInactiveDayReturnsEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", 30, 5000)
	repo.hours[int(monday.Weekday())] = models.OperatingHours{
		CompanyID: 1,
		Weekday:   int(monday.Weekday()),
		Active:    false,
		StartTime: "09:00",
		EndTime:   "19:00",
	}

	uc := newAvailabilityUC(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1},
		Date:       monday,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty slots for inactive day, got %v", slots)
	}
}

func TestAvailabilityGridSkipsBookedSlot(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", 30, 5000)
	repo.openDay(int(monday.Weekday()), "09:00", "19:00")

	booked := models.Appointment{
		CompanyID: 1,
		StaffID:   10,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(10*time.Hour + 30*time.Minute),
		Status:    string(domain.StatusScheduled),
	}
	if err := repo.ReserveAppointment(context.Background(), &booked); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	uc := newAvailabilityUC(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1},
		Date:       monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Grade de 30 em 30 das 09:00 às 18:30 (20 candidatos), menos o 10:00.
	if len(slots) != 19 {
		t.Fatalf("expected 19 slots, got %d: %v", len(slots), slots)
	}
	for _, s := range slots {
		if s == "10:00" {
			t.Fatalf("booked slot 10:00 should not be offered: %v", slots)
		}
	}
	if slots[0] != "09:00" || slots[1] != "09:30" || slots[2] != "10:30" {
		t.Fatalf("unexpected leading slots: %v", slots[:3])
	}
	if slots[len(slots)-1] != "18:30" {
		t.Fatalf("expected last slot 18:30, got %s", slots[len(slots)-1])
	}
}

func TestAvailabilityLongComboOnlyFitsAtOpening(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Dia de noiva", 600, 90000)
	repo.openDay(int(monday.Weekday()), "09:00", "19:00")

	uc := newAvailabilityUC(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1},
		Date:       monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"09:00"}
	if !reflect.DeepEqual(slots, want) {
		t.Fatalf("expected %v, got %v", want, slots)
	}
}

func TestAvailabilityComboDurationBlocksNeighbors(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", 30, 5000)
	repo.addService(2, "Coloração", 60, 12000)
	repo.openDay(int(monday.Weekday()), "09:00", "11:00")

	booked := models.Appointment{
		CompanyID: 1,
		StaffID:   10,
		StartTime: monday.Add(10 * time.Hour),
		EndTime:   monday.Add(10*time.Hour + 30*time.Minute),
		Status:    string(domain.StatusScheduled),
	}
	if err := repo.ReserveAppointment(context.Background(), &booked); err != nil {
		t.Fatalf("seed appointment: %v", err)
	}

	uc := newAvailabilityUC(repo)

	// Combo de 90 minutos: só 09:00..10:30 caberia antes das 11:00, e o
	// agendamento das 10:00 derruba todos os candidatos que o atravessam.
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1, 2},
		Date:       monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestAvailabilityExcludesPastSlots(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", 30, 5000)
	repo.openDay(int(monday.Weekday()), "09:00", "19:00")

	uc := NewGetAvailability(repo)
	uc.now = fixedClock(monday.Add(12*time.Hour + 15*time.Minute))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1},
		Date:       monday,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) == 0 {
		t.Fatal("expected remaining slots in the afternoon")
	}
	if slots[0] != "12:30" {
		t.Fatalf("expected first slot 12:30, got %s", slots[0])
	}
}

func TestAvailabilityUnknownServiceFails(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", 30, 5000)
	repo.openDay(int(monday.Weekday()), "09:00", "19:00")

	uc := newAvailabilityUC(repo)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1, 99},
		Date:       monday,
	})
	if !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}
}

func TestAvailabilityMissingServicesFails(t *testing.T) {
	repo := newFakeRepo()
	uc := newAvailabilityUC(repo)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		CompanyID: 1,
		StaffID:   10,
		Date:      monday,
	})
	if !httperr.IsBusiness(err, "missing_services") {
		t.Fatalf("expected missing_services, got %v", err)
	}
}

func TestAvailabilityIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(1, "Corte", 30, 5000)
	repo.openDay(int(monday.Weekday()), "09:00", "12:00")

	uc := newAvailabilityUC(repo)

	in := domain.AvailabilityInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1},
		Date:       monday,
	}

	first, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("consultation must not mutate state: %v vs %v", first, second)
	}
}
