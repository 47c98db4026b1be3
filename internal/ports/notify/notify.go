package notify

import (
	"context"
	"time"
)

// EventType identifica la notificación saliente.
type EventType string

const (
	EventDocumentsApproved   EventType = "documents.approved"
	EventDocumentRejected    EventType = "document.rejected"
	EventAppointmentBooked   EventType = "appointment.booked"
	EventAppointmentMoved    EventType = "appointment.rescheduled"
	EventAppointmentCanceled EventType = "appointment.cancelled"
	EventAppointmentReviewed EventType = "appointment.evaluated"
	EventRequestCancelled    EventType = "request.cancelled"
	EventRequestReopened     EventType = "request.reopened"
	EventAdoptionApproved    EventType = "adoption.approved"
	EventAdoptionRejected    EventType = "adoption.rejected"
)

// Event es el payload tipado que viaja al canal de notificaciones.
type Event struct {
	Type        EventType         `json:"type"`
	ApplicantID string            `json:"applicant_id"`
	Data        map[string]string `json:"data,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// Dispatcher es fire-and-forget: no devuelve error y no bloquea al caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event)
}

// Sender entrega un evento (email, webhook, log). Lo usan los dispatchers y el worker.
type Sender interface {
	Send(ctx context.Context, ev Event) error
}
