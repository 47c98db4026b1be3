// Package lifecycle coordina animales, pedidos, documentos, visitas y adopciones
// en un único proceso consistente. Cada mutación re-valida sus reglas dentro de
// una transacción del store y notifica recién después del commit.
package lifecycle

import (
	"context"
	"time"

	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/files"
	"pet-adoption/internal/ports/notify"
	"pet-adoption/internal/ports/store"
)

const defaultMaxDocumentBytes = 5 << 20

// Deps son los colaboradores del proceso. Store es obligatorio; el resto tiene defaults.
type Deps struct {
	Store    store.Store
	Files    files.Storage
	Notifier notify.Dispatcher
	Log      logger.Logger
	Now      func() time.Time

	Policy           appointments.Policy
	RequiredDocs     []documents.Type
	MaxDocumentBytes int64
}

// Services agrupa los componentes que expone el paquete.
type Services struct {
	Documents *DocumentService
	Requests  *RequestService
	Scheduler *Scheduler
	Finalizer *Finalizer
	Phase     *Orchestrator
}

func New(d Deps) Services {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Notifier == nil {
		d.Notifier = nopDispatcher{}
	}
	if len(d.Policy.Times) == 0 {
		d.Policy = appointments.DefaultPolicy()
	}
	if len(d.RequiredDocs) == 0 {
		d.RequiredDocs = documents.AllTypes
	}
	if d.MaxDocumentBytes <= 0 {
		d.MaxDocumentBytes = defaultMaxDocumentBytes
	}

	b := &base{
		store:    d.Store,
		files:    d.Files,
		notifier: d.Notifier,
		log:      d.Log,
		now:      d.Now,
		policy:   d.Policy,
		required: d.RequiredDocs,
	}

	return Services{
		Documents: &DocumentService{base: b, maxBytes: d.MaxDocumentBytes},
		Requests:  &RequestService{base: b},
		Scheduler: &Scheduler{base: b},
		Finalizer: &Finalizer{base: b},
		Phase:     &Orchestrator{base: b},
	}
}

// base es el estado compartido por todos los servicios.
type base struct {
	store    store.Store
	files    files.Storage
	notifier notify.Dispatcher
	log      logger.Logger
	now      func() time.Time

	policy   appointments.Policy
	required []documents.Type
}

func (b *base) dispatch(ctx context.Context, typ notify.EventType, applicantID string, data map[string]string) {
	b.notifier.Dispatch(ctx, notify.Event{
		Type:        typ,
		ApplicantID: applicantID,
		Data:        data,
		OccurredAt:  b.now(),
	})
}

// aggregate recalcula el estado documental con los repos recibidos (store o tx).
func (b *base) aggregate(ctx context.Context, repos store.Repos, applicantID string) (documents.AggregateStatus, error) {
	docs, err := repos.Documents().ListByApplicant(ctx, applicantID)
	if err != nil {
		return "", err
	}
	return documents.Aggregate(docs, b.required), nil
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(context.Context, notify.Event) {}

func requireActor(actor auth.Actor) error {
	if actor.ID == "" {
		return apperr.Authorization("authentication required")
	}
	return nil
}

func requireAdmin(actor auth.Actor) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.Admin {
		return apperr.Authorization("administrator role required")
	}
	return nil
}

// requireSelfOrAdmin: el postulante sobre sus propios datos o un administrador.
func requireSelfOrAdmin(actor auth.Actor, applicantID string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if actor.Admin || actor.ID == applicantID {
		return nil
	}
	return apperr.Authorization("not allowed to act on another applicant")
}
