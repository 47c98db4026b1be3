package notify

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"
)

// LogSender escribe la notificación en el log. Es el canal por defecto en dev.
type LogSender struct {
	log logger.Logger
}

func NewLogSender(log logger.Logger) *LogSender {
	if log == nil {
		log = logger.Nop()
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, ev notify.Event) error {
	fields := map[string]any{
		"event":        string(ev.Type),
		"applicant_id": ev.ApplicantID,
	}
	for k, v := range ev.Data {
		fields["data."+k] = v
	}
	s.log.Info("notification", fields)
	return nil
}

// WebhookSender hace POST del evento en JSON a una URL externa (email gateway, etc).
type WebhookSender struct {
	client *httpclient.Client
	url    string
}

func NewWebhookSender(url string, timeout time.Duration) (*WebhookSender, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("notify: webhook url is required")
	}
	return &WebhookSender{client: httpclient.New(timeout), url: url}, nil
}

func (s *WebhookSender) Send(ctx context.Context, ev notify.Event) error {
	return s.client.DoJSON(ctx, http.MethodPost, s.url, map[string]string{
		"X-Event-Type": string(ev.Type),
	}, ev, nil)
}

// Senders entrega a todos; junta los errores.
type Senders []notify.Sender

func (ss Senders) Send(ctx context.Context, ev notify.Event) error {
	var errs []error
	for _, s := range ss {
		if err := s.Send(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
