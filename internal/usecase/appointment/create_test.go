package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/marcou-app/marcou/internal/audit"
	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/httperr"
)

func newCreateUC(repo *fakeRepo) *CreateAppointment {
	uc := NewCreateAppointment(repo, audit.NewDispatcher(audit.New(nil)))
	uc.now = fixedClock(monday.AddDate(0, -1, 0))
	return uc
}

func baseCreateInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		CompanyID:  1,
		StaffID:    10,
		ServiceIDs: []uint{1},
		Start:      monday.Add(10 * time.Hour),
		WalkInName: "Fulano",
	}
}

func seededRepo() *fakeRepo {
	repo := newFakeRepo()
	repo.addService(1, "Corte", 30, 5000)
	repo.addService(2, "Barba", 30, 3000)
	repo.openDay(int(monday.Weekday()), "09:00", "19:00")
	return repo
}

func TestCreateWalkInSuccess(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	in := baseCreateInput()
	in.ServiceIDs = []uint{1, 2}

	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.ID == 0 {
		t.Fatal("expected persisted appointment with id")
	}
	if ap.ServiceLabel != "Corte + Barba" {
		t.Fatalf("unexpected label: %q", ap.ServiceLabel)
	}
	if ap.TotalPriceCents != 8000 {
		t.Fatalf("expected total 8000, got %d", ap.TotalPriceCents)
	}
	wantEnd := in.Start.Add(60 * time.Minute)
	if !ap.EndTime.Equal(wantEnd) {
		t.Fatalf("expected end %v, got %v", wantEnd, ap.EndTime)
	}
	if ap.Status != string(domain.StatusScheduled) {
		t.Fatalf("expected scheduled, got %q", ap.Status)
	}
	if ap.ClientID != nil {
		t.Fatal("walk-in must not create a client record")
	}
}

func TestCreateDuplicateServiceIDsCountOnce(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	in := baseCreateInput()
	in.ServiceIDs = []uint{1, 1, 1}

	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.TotalPriceCents != 5000 {
		t.Fatalf("duplicated ids must count once, got total %d", ap.TotalPriceCents)
	}
	if ap.ServiceLabel != "Corte" {
		t.Fatalf("unexpected label: %q", ap.ServiceLabel)
	}
}

func TestCreatePublicContactReusesClientByPhone(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	first := baseCreateInput()
	first.WalkInName = ""
	first.ClientContact = &ClientContact{Name: "Maria", Phone: "11999990000"}

	ap1, err := uc.Execute(context.Background(), first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := baseCreateInput()
	second.Start = monday.Add(14 * time.Hour)
	second.WalkInName = ""
	second.ClientContact = &ClientContact{Name: "Maria S.", Phone: "11999990000"}

	ap2, err := uc.Execute(context.Background(), second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap1.ClientID == nil || ap2.ClientID == nil {
		t.Fatal("public bookings must resolve a client record")
	}
	if *ap1.ClientID != *ap2.ClientID {
		t.Fatalf("same phone must reuse client: %d vs %d", *ap1.ClientID, *ap2.ClientID)
	}
}

func TestCreateClientRefMustBeExactlyOne(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	none := baseCreateInput()
	none.WalkInName = ""
	if _, err := uc.Execute(context.Background(), none); !httperr.IsBusiness(err, "invalid_client_ref") {
		t.Fatalf("no client ref: expected invalid_client_ref, got %v", err)
	}

	both := baseCreateInput()
	both.ClientContact = &ClientContact{Name: "Maria", Phone: "11999990000"}
	if _, err := uc.Execute(context.Background(), both); !httperr.IsBusiness(err, "invalid_client_ref") {
		t.Fatalf("two client refs: expected invalid_client_ref, got %v", err)
	}
}

func TestCreateUnknownServiceFails(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	in := baseCreateInput()
	in.ServiceIDs = []uint{1, 99}

	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "service_not_found") {
		t.Fatalf("expected service_not_found, got %v", err)
	}

	if len(repo.appointments) != 0 {
		t.Fatal("failed booking must not persist anything")
	}
}

func TestCreateRespectsMinAdvance(t *testing.T) {
	repo := seededRepo()
	repo.company.MinAdvanceMinutes = 120

	uc := newCreateUC(repo)
	uc.now = fixedClock(monday.Add(9 * time.Hour))

	// 10:00 está a 60 min do relógio, abaixo da antecedência de 120.
	in := baseCreateInput()
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "too_soon") {
		t.Fatalf("expected too_soon, got %v", err)
	}

	in.Start = monday.Add(14 * time.Hour)
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("far enough booking should pass, got %v", err)
	}
}

func TestCreateOutsideOperatingHoursFails(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	in := baseCreateInput()
	in.Start = monday.Add(22 * time.Hour)

	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "outside_operating_hours") {
		t.Fatalf("expected outside_operating_hours, got %v", err)
	}
}

func TestCreateOverlapConflicts(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	if _, err := uc.Execute(context.Background(), baseCreateInput()); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// mesmo horário, mesmo profissional
	in := baseCreateInput()
	in.WalkInName = "Sicrano"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("expected time_conflict, got %v", err)
	}

	// sobreposição parcial também conflita
	in.Start = monday.Add(10*time.Hour + 15*time.Minute)
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "time_conflict") {
		t.Fatalf("partial overlap: expected time_conflict, got %v", err)
	}

	// encostado (fim == início) não conflita
	in.Start = monday.Add(10*time.Hour + 30*time.Minute)
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("back-to-back booking should pass, got %v", err)
	}
}

func TestCreateOtherStaffSameSlotPasses(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	if _, err := uc.Execute(context.Background(), baseCreateInput()); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	in := baseCreateInput()
	in.StaffID = 11
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("other staff member must not conflict, got %v", err)
	}
}

func TestCreateConcurrentSameSlotExactlyOneWins(t *testing.T) {
	repo := seededRepo()
	uc := newCreateUC(repo)

	const attempts = 16

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := baseCreateInput()
			_, errs[i] = uc.Execute(context.Background(), in)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case httperr.IsBusiness(err, "time_conflict"):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
	if len(repo.appointments) != 1 {
		t.Fatalf("expected exactly one persisted appointment, got %d", len(repo.appointments))
	}
}
