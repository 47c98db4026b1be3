package notify

import (
	"context"
	"sync"
	"time"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"
)

const defaultSendTimeout = 5 * time.Second

// AsyncDispatcher manda cada evento en su propia goroutine.
// El request que lo disparó no espera ni ve el error: sólo queda en el log.
type AsyncDispatcher struct {
	sender  notify.Sender
	log     logger.Logger
	timeout time.Duration

	wg sync.WaitGroup
}

var _ notify.Dispatcher = (*AsyncDispatcher)(nil)

func NewAsyncDispatcher(sender notify.Sender, log logger.Logger, timeout time.Duration) *AsyncDispatcher {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &AsyncDispatcher{sender: sender, log: log, timeout: timeout}
}

func (d *AsyncDispatcher) Dispatch(ctx context.Context, ev notify.Event) {
	// el request puede terminar antes que el envío
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer cancel()

		if err := d.sender.Send(sendCtx, ev); err != nil {
			d.log.Error("notification failed", map[string]any{
				"event":        string(ev.Type),
				"applicant_id": ev.ApplicantID,
				"err":          err.Error(),
			})
		}
	}()
}

// Wait bloquea hasta que terminen los envíos en curso (shutdown y tests).
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}
