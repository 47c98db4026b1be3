package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	memfiles "pet-adoption/internal/adapters/filestorage/memory"
	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/domain/lifecycle"
	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/notify"
	"pet-adoption/internal/ports/store"

	"github.com/google/uuid"
)

// Estos tests corren contra un Postgres real: DB_DSN=postgres://... go test ./internal/adapters/storage/postgres/
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		t.Skip("DB_DSN not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(ctx, db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fixture crea filas con ids únicos por test y las borra al terminar.
type fixture struct {
	t          *testing.T
	db         *sql.DB
	st         *Store
	now        time.Time
	applicants []string
	animals    []string
}

func newFixture(t *testing.T) *fixture {
	db := openTestDB(t)
	f := &fixture{t: t, db: db, st: NewStore(db), now: time.Now().UTC().Truncate(time.Microsecond)}
	t.Cleanup(f.cleanup)
	return f
}

func (f *fixture) cleanup() {
	ctx := context.Background()
	for _, id := range f.applicants {
		for _, q := range []string{
			"DELETE FROM adoptions WHERE applicant_id = $1",
			"DELETE FROM appointments WHERE applicant_id = $1",
			"DELETE FROM adoption_requests WHERE applicant_id = $1",
			"DELETE FROM documents WHERE applicant_id = $1",
		} {
			if _, err := f.db.ExecContext(ctx, q, id); err != nil {
				f.t.Logf("cleanup: %v", err)
			}
		}
	}
	for _, id := range f.animals {
		if _, err := f.db.ExecContext(ctx, "DELETE FROM animals WHERE id = $1", id); err != nil {
			f.t.Logf("cleanup: %v", err)
		}
	}
}

func (f *fixture) applicant() string {
	id := "it-" + uuid.NewString()
	f.applicants = append(f.applicants, id)
	return id
}

func (f *fixture) animal(ctx context.Context) string {
	f.t.Helper()
	id := uuid.NewString()
	f.animals = append(f.animals, id)
	err := f.st.Animals().Create(ctx, animals.Animal{
		ID:        id,
		Name:      "Toto",
		Species:   animals.SpeciesDog,
		Sex:       animals.SexMale,
		Size:      animals.SizeSmall,
		State:     animals.StateAvailable,
		CreatedAt: f.now,
		UpdatedAt: f.now,
	})
	if err != nil {
		f.t.Fatalf("create animal: %v", err)
	}
	return id
}

func (f *fixture) request(ctx context.Context, applicantID, animalID string) requests.Request {
	f.t.Helper()
	r := requests.Request{
		ID:          uuid.NewString(),
		ApplicantID: applicantID,
		AnimalID:    animalID,
		Status:      requests.StatusPending,
		CreatedAt:   f.now,
		UpdatedAt:   f.now,
	}
	if err := f.st.Requests().Create(ctx, r); err != nil {
		f.t.Fatalf("create request: %v", err)
	}
	return r
}

func visit(r requests.Request, date, clock string, at time.Time) appointments.Appointment {
	return appointments.Appointment{
		ID:          uuid.NewString(),
		RequestID:   r.ID,
		ApplicantID: r.ApplicantID,
		AnimalID:    r.AnimalID,
		Date:        date,
		Time:        clock,
		Status:      appointments.StatusScheduled,
		CreatedAt:   at,
		UpdatedAt:   at,
	}
}

// slotDate evita chocar con visitas de otras corridas: un día lejano distinto por test.
func slotDate() string {
	return time.Date(2900, 1, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, int(uuid.New().ID()%200000)).
		Format("2006-01-02")
}

func TestIntegration_ActiveSlotIsUnique(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	date := slotDate()

	r1 := f.request(ctx, f.applicant(), f.animal(ctx))
	r2 := f.request(ctx, f.applicant(), f.animal(ctx))

	first := visit(r1, date, "10:00", f.now)
	if err := f.st.Appointments().Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.st.Appointments().Create(ctx, visit(r2, date, "10:00", f.now)); !apperr.IsSlotConflict(err) {
		t.Fatalf("expected slot conflict, got %v", err)
	}

	first.Status = appointments.StatusCancelled
	if err := f.st.Appointments().Update(ctx, first); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := f.st.Appointments().Create(ctx, visit(r2, date, "10:00", f.now)); err != nil {
		t.Fatalf("a cancelled visit must free the slot: %v", err)
	}
}

func TestIntegration_OneActiveRequestPerApplicant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	applicant := f.applicant()

	r := f.request(ctx, applicant, f.animal(ctx))
	second := requests.Request{
		ID: uuid.NewString(), ApplicantID: applicant, AnimalID: f.animal(ctx),
		Status: requests.StatusPending, CreatedAt: f.now, UpdatedAt: f.now,
	}
	if err := f.st.Requests().Create(ctx, second); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	if err := requests.Transition(&r, requests.StatusCancelled, f.now); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if err := f.st.Requests().Update(ctx, r); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := f.st.Requests().Create(ctx, second); err != nil {
		t.Fatalf("create after cancel: %v", err)
	}
}

func TestIntegration_AnimalTransitionIsCompareAndSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.animal(ctx)

	a, err := f.st.Animals().TransitionState(ctx, id, animals.StateAvailable, animals.StateReserved, f.now)
	if err != nil || a.State != animals.StateReserved {
		t.Fatalf("unexpected transition %+v err=%v", a, err)
	}
	if _, err := f.st.Animals().TransitionState(ctx, id, animals.StateAvailable, animals.StateReserved, f.now); !apperr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := f.st.Animals().TransitionState(ctx, uuid.NewString(), animals.StateAvailable, animals.StateReserved, f.now); !apperr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIntegration_WithTxRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.animal(ctx)
	boom := errors.New("boom")

	err := f.st.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		if _, err := tx.Animals().TransitionState(ctx, id, animals.StateAvailable, animals.StateReserved, f.now); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	a, err := f.st.Animals().GetByID(ctx, id)
	if err != nil || a.State != animals.StateAvailable {
		t.Fatalf("expected rollback to keep the animal available, got %+v err=%v", a, err)
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []notify.Event
}

func (l *eventLog) Dispatch(_ context.Context, ev notify.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) count(typ notify.EventType) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, ev := range l.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

// Las dos últimas aprobaciones en paralelo: exactamente una ve el set completo.
func TestIntegration_ConcurrentApprovalsNotifyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	events := &eventLog{}
	svc := lifecycle.New(lifecycle.Deps{Store: f.st, Files: memfiles.New(), Notifier: events})

	admin := auth.Actor{ID: "admin-it", Admin: true}
	applicant := f.applicant()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")

	var docs []documents.Document
	for _, typ := range documents.AllTypes {
		d, err := svc.Documents.Upload(ctx, auth.Actor{ID: applicant}, lifecycle.UploadInput{
			Type: string(typ), FileName: string(typ) + ".png", ContentType: "image/png", Data: png,
		})
		if err != nil {
			t.Fatalf("upload %s: %v", typ, err)
		}
		docs = append(docs, d)
	}
	if _, err := svc.Documents.Approve(ctx, admin, docs[0].ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(docs)-1)
	for _, d := range docs[1:] {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.Documents.Approve(ctx, admin, id)
			errs <- err
		}(d.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("approve: %v", err)
		}
	}

	if n := events.count(notify.EventDocumentsApproved); n != 1 {
		t.Fatalf("expected exactly one documents.approved, got %d", n)
	}
}
