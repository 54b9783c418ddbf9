package appointment

import (
	"testing"
	"time"

	"github.com/marcou-app/marcou/internal/models"
)

func TestCancelOnlyFromScheduled(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Cancel(ap, now); err != nil {
		t.Fatalf("cancel scheduled: %v", err)
	}
	if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
		t.Fatalf("cancel did not stamp state: %+v", ap)
	}

	if err := Cancel(ap, now); err == nil {
		t.Fatal("cancelling twice should fail")
	}

	done := &models.Appointment{Status: string(StatusCompleted)}
	if err := Cancel(done, now); err == nil {
		t.Fatal("cancelling a completed appointment should fail")
	}
}

func TestCompleteOnlyFromScheduled(t *testing.T) {
	now := time.Now()

	ap := &models.Appointment{Status: string(StatusScheduled)}
	if err := Complete(ap, now); err != nil {
		t.Fatalf("complete scheduled: %v", err)
	}
	if ap.Status != string(StatusCompleted) || ap.CompletedAt == nil {
		t.Fatalf("complete did not stamp state: %+v", ap)
	}

	cancelled := &models.Appointment{Status: string(StatusCancelled)}
	if err := Complete(cancelled, now); err == nil {
		t.Fatal("completing a cancelled appointment should fail")
	}
}
