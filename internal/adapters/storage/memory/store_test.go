package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/store"
)

var at = time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)

func TestWithTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Animals().Create(ctx, animals.Animal{ID: "a-1", Name: "Milo", State: animals.StateAvailable}); err != nil {
		t.Fatalf("create animal: %v", err)
	}

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		if _, err := tx.Animals().TransitionState(ctx, "a-1", animals.StateAvailable, animals.StateReserved, at); err != nil {
			return err
		}
		if err := tx.Requests().Create(ctx, requests.Request{ID: "r-1", ApplicantID: "u-1", AnimalID: "a-1", Status: requests.StatusPending}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	a, _ := s.Animals().GetByID(ctx, "a-1")
	if a.State != animals.StateAvailable {
		t.Fatalf("animal state leaked from rolled back tx: %s", a.State)
	}
	if _, err := s.Requests().GetByID(ctx, "r-1"); !apperr.IsNotFound(err) {
		t.Fatalf("request leaked from rolled back tx: %v", err)
	}
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		return tx.Requests().Create(ctx, requests.Request{ID: "r-1", ApplicantID: "u-1", Status: requests.StatusPending, CreatedAt: at})
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	items, _ := s.Requests().ListByApplicant(ctx, "u-1")
	if len(items) != 1 {
		t.Fatalf("expected committed request, got %d", len(items))
	}
}

func TestRequests_OneActivePerApplicant(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Requests()

	if err := repo.Create(ctx, requests.Request{ID: "r-1", ApplicantID: "u-1", Status: requests.StatusPending}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := repo.Create(ctx, requests.Request{ID: "r-2", ApplicantID: "u-1", Status: requests.StatusPending}); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Cancelado libera el lugar
	r1, _ := repo.GetByID(ctx, "r-1")
	r1.Status = requests.StatusCancelled
	if err := repo.Update(ctx, r1); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := repo.Create(ctx, requests.Request{ID: "r-2", ApplicantID: "u-1", Status: requests.StatusPending}); err != nil {
		t.Fatalf("create after cancel: %v", err)
	}

	// Reactivar r-1 chocaría con r-2
	r1.Status = requests.StatusPending
	if err := repo.Update(ctx, r1); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict on reactivation, got %v", err)
	}
}

func TestAppointments_SlotUniqueness(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	repo := s.Appointments()

	first := appointments.Appointment{ID: "ap-1", Date: "2025-12-23", Time: "10:00", Status: appointments.StatusScheduled}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}

	second := appointments.Appointment{ID: "ap-2", Date: "2025-12-23", Time: "10:00", Status: appointments.StatusScheduled}
	if err := repo.Create(ctx, second); !apperr.IsSlotConflict(err) {
		t.Fatalf("expected slot conflict, got %v", err)
	}

	first.Status = appointments.StatusCancelled
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatalf("slot should be free after cancel: %v", err)
	}

	taken, _ := repo.ListByDate(ctx, "2025-12-23")
	if len(taken) != 1 || taken[0].ID != "ap-2" {
		t.Fatalf("expected only ap-2 on the date, got %+v", taken)
	}
}

func TestAnimals_TransitionStateIsCompareAndSet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_ = s.Animals().Create(ctx, animals.Animal{ID: "a-1", State: animals.StateAvailable})

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Animals().TransitionState(ctx, "a-1", animals.StateAvailable, animals.StateReserved, at)
			if err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one reservation, got %d", wins)
	}

	if _, err := s.Animals().TransitionState(ctx, "missing", animals.StateAvailable, animals.StateReserved, at); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRequests_ListNewestFirst(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = s.Requests().Create(ctx, requests.Request{
			ID:          fmt.Sprintf("r-%d", i),
			ApplicantID: "u-1",
			Status:      requests.StatusCancelled,
			CreatedAt:   at,
		})
	}
	items, _ := s.Requests().ListByApplicant(ctx, "u-1")
	if len(items) != 3 || items[0].ID != "r-2" || items[2].ID != "r-0" {
		t.Fatalf("unexpected order %+v", items)
	}
}
