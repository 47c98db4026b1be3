package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"
)

// SendNotificationTask se encola por cada evento cuando el driver es "queue".
const SendNotificationTask = "notification:send"

const maxRetry = 5

// Enqueuer es la parte de *asynq.Client que usamos.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewSendTask arma la task con el evento serializado.
func NewSendTask(ev notify.Event) (*asynq.Task, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return asynq.NewTask(SendNotificationTask, data), nil
}

// QueueDispatcher encola los eventos en Redis; el worker los entrega con reintentos.
type QueueDispatcher struct {
	client Enqueuer
	log    logger.Logger
}

var _ notify.Dispatcher = (*QueueDispatcher)(nil)

func NewQueueDispatcher(client Enqueuer, log logger.Logger) *QueueDispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &QueueDispatcher{client: client, log: log}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, ev notify.Event) {
	task, err := NewSendTask(ev)
	if err == nil {
		_, err = d.client.EnqueueContext(context.WithoutCancel(ctx), task, asynq.MaxRetry(maxRetry))
	}
	if err != nil {
		d.log.Error("enqueue notification failed", map[string]any{
			"event":        string(ev.Type),
			"applicant_id": ev.ApplicantID,
			"err":          err.Error(),
		})
	}
}

// Processor entrega las notificaciones encoladas. Se monta en el asynq.Server del worker.
type Processor struct {
	sender notify.Sender
	log    logger.Logger
}

func NewProcessor(sender notify.Sender, log logger.Logger) *Processor {
	if log == nil {
		log = logger.Nop()
	}
	return &Processor{sender: sender, log: log}
}

// Handler registra el handler de envío.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(SendNotificationTask, p.handleSend)
	return mux
}

func (p *Processor) handleSend(ctx context.Context, task *asynq.Task) error {
	var ev notify.Event
	if err := json.Unmarshal(task.Payload(), &ev); err != nil {
		// payload roto: reintentar no sirve
		return fmt.Errorf("decode event: %v: %w", err, asynq.SkipRetry)
	}
	if err := p.sender.Send(ctx, ev); err != nil {
		p.log.Warn("notification delivery failed", map[string]any{
			"event":        string(ev.Type),
			"applicant_id": ev.ApplicantID,
			"err":          err.Error(),
		})
		return err
	}
	return nil
}
