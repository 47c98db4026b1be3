package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hibiken/asynq"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"
)

type recordingSender struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
	ctxErr error
}

func (s *recordingSender) Send(ctx context.Context, ev notify.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	s.ctxErr = ctx.Err()
	return s.err
}

func sampleEvent() notify.Event {
	return notify.Event{
		Type:        notify.EventAppointmentBooked,
		ApplicantID: "user-1",
		Data:        map[string]string{"date": "2025-12-23", "time": "10:00"},
		OccurredAt:  time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC),
	}
}

func TestAsyncDispatcher_OutlivesRequestContext(t *testing.T) {
	s := &recordingSender{}
	d := NewAsyncDispatcher(s, nil, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // el request ya terminó
	d.Dispatch(ctx, sampleEvent())
	d.Wait()

	if len(s.events) != 1 || s.ctxErr != nil {
		t.Fatalf("expected delivery with a live context, got %d events ctxErr=%v", len(s.events), s.ctxErr)
	}
}

func TestAsyncDispatcher_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})
	d := NewAsyncDispatcher(&recordingSender{err: errors.New("smtp down")}, log, time.Second)

	d.Dispatch(context.Background(), sampleEvent())
	d.Wait()

	if !strings.Contains(buf.String(), "notification failed") || !strings.Contains(buf.String(), "smtp down") {
		t.Fatalf("expected failure in log, got %s", buf.String())
	}
}

func TestWebhookSender_PostsEvent(t *testing.T) {
	var (
		gotType string
		got     notify.Event
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("X-Event-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s, err := NewWebhookSender(srv.URL, time.Second)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.Send(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("send: %v", err)
	}
	if gotType != string(notify.EventAppointmentBooked) || got.ApplicantID != "user-1" || got.Data["time"] != "10:00" {
		t.Fatalf("unexpected webhook payload type=%s event=%+v", gotType, got)
	}

	if _, err := NewWebhookSender("  ", time.Second); err == nil {
		t.Fatalf("expected error for empty url")
	}
}

func TestSenders_JoinsErrors(t *testing.T) {
	ok := &recordingSender{}
	bad := &recordingSender{err: errors.New("boom")}

	err := Senders{bad, ok}.Send(context.Background(), sampleEvent())
	if err == nil || len(ok.events) != 1 {
		t.Fatalf("expected all senders called and error returned, err=%v", err)
	}
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "t1"}, nil
}

func TestQueue_RoundTripThroughProcessor(t *testing.T) {
	q := &fakeEnqueuer{}
	NewQueueDispatcher(q, nil).Dispatch(context.Background(), sampleEvent())
	if len(q.tasks) != 1 || q.tasks[0].Type() != SendNotificationTask {
		t.Fatalf("expected one %s task, got %+v", SendNotificationTask, q.tasks)
	}

	s := &recordingSender{}
	p := NewProcessor(s, nil)
	if err := p.Handler().ProcessTask(context.Background(), q.tasks[0]); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(s.events) != 1 || s.events[0].Type != notify.EventAppointmentBooked || s.events[0].Data["date"] != "2025-12-23" {
		t.Fatalf("unexpected delivered event %+v", s.events)
	}

	bad := asynq.NewTask(SendNotificationTask, []byte("{"))
	if err := p.Handler().ProcessTask(context.Background(), bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for a broken payload, got %v", err)
	}
}

func TestQueueDispatcher_EnqueueErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})

	NewQueueDispatcher(&fakeEnqueuer{err: errors.New("redis down")}, log).Dispatch(context.Background(), sampleEvent())
	if !strings.Contains(buf.String(), "redis down") {
		t.Fatalf("expected enqueue error in log, got %s", buf.String())
	}
}
