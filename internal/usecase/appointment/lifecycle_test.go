package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/marcou-app/marcou/internal/audit"
	domain "github.com/marcou-app/marcou/internal/domain/appointment"
	"github.com/marcou-app/marcou/internal/httperr"
	"github.com/marcou-app/marcou/internal/models"
)

func bookOne(t *testing.T, repo *fakeRepo) *models.Appointment {
	t.Helper()

	ap, err := newCreateUC(repo).Execute(context.Background(), baseCreateInput())
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return ap
}

func TestCancelScheduledAppointment(t *testing.T) {
	repo := seededRepo()
	ap := bookOne(t, repo)

	uc := NewCancelAppointment(repo, audit.NewDispatcher(audit.New(nil)))

	cancelled, err := uc.Execute(context.Background(), 1, 10, ap.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancelled.Status != string(domain.StatusCancelled) {
		t.Fatalf("expected cancelled, got %q", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatal("expected cancellation timestamp")
	}

	// cancelar de novo é transição inválida
	if _, err := uc.Execute(context.Background(), 1, 10, ap.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestCancelledSlotBecomesBookableAgain(t *testing.T) {
	repo := seededRepo()
	ap := bookOne(t, repo)

	cancelUC := NewCancelAppointment(repo, audit.NewDispatcher(audit.New(nil)))
	if _, err := cancelUC.Execute(context.Background(), 1, 10, ap.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	in := baseCreateInput()
	in.WalkInName = "Sicrano"
	if _, err := newCreateUC(repo).Execute(context.Background(), in); err != nil {
		t.Fatalf("slot should be free after cancellation, got %v", err)
	}
}

func TestCompleteScheduledAppointment(t *testing.T) {
	repo := seededRepo()
	ap := bookOne(t, repo)

	uc := NewCompleteAppointment(repo, audit.NewDispatcher(audit.New(nil)))

	done, err := uc.Execute(context.Background(), 1, 10, ap.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if done.Status != string(domain.StatusCompleted) {
		t.Fatalf("expected completed, got %q", done.Status)
	}
	if done.CompletedAt == nil {
		t.Fatal("expected completion timestamp")
	}
}

func TestTransitionScopedToStaff(t *testing.T) {
	repo := seededRepo()
	ap := bookOne(t, repo)

	uc := NewCancelAppointment(repo, audit.NewDispatcher(audit.New(nil)))

	// outro profissional não enxerga o agendamento
	if _, err := uc.Execute(context.Background(), 1, 11, ap.ID); !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestClientHistoryNewestFirst(t *testing.T) {
	repo := seededRepo()

	createUC := newCreateUC(repo)

	contact := &ClientContact{Name: "Maria", Phone: "11999990000"}

	early := baseCreateInput()
	early.WalkInName = ""
	early.ClientContact = contact
	if _, err := createUC.Execute(context.Background(), early); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	late := baseCreateInput()
	late.Start = monday.Add(15 * time.Hour)
	late.WalkInName = ""
	late.ClientContact = contact
	if _, err := createUC.Execute(context.Background(), late); err != nil {
		t.Fatalf("second booking: %v", err)
	}

	var clientID uint
	for id := range repo.clients {
		clientID = id
	}

	historyUC := NewListClientHistory(repo)
	history, err := historyUC.Execute(context.Background(), 1, clientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if !history[0].StartTime.After(history[1].StartTime) {
		t.Fatalf("expected newest first: %v then %v", history[0].StartTime, history[1].StartTime)
	}
	if history[0].ClientName != "Maria" {
		t.Fatalf("expected client name on entries, got %q", history[0].ClientName)
	}
}
