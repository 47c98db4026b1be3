package lifecycle

import (
	"context"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"
)

// Phase es la etapa derivada del postulante (no se persiste).
type Phase string

const (
	PhaseSelectAnimal      Phase = "select_animal"
	PhaseBookAppointment   Phase = "book_appointment"
	PhaseAwaitingVisit     Phase = "awaiting_visit"
	PhaseVisitUnsuccessful Phase = "visit_unsuccessful"
	PhaseCompleteFinalForm Phase = "complete_final_form"
	PhaseUnderReview       Phase = "under_review"
	PhaseAdopted           Phase = "adopted"
	PhaseRejected          Phase = "rejected"
)

// Step es la posición en el stepper de la UI (1..6).
func (p Phase) Step() int {
	switch p {
	case PhaseSelectAnimal:
		return 1
	case PhaseBookAppointment:
		return 2
	case PhaseAwaitingVisit, PhaseVisitUnsuccessful:
		return 3
	case PhaseCompleteFinalForm:
		return 4
	case PhaseUnderReview:
		return 5
	default:
		return 6
	}
}

// NextAction le indica a la UI qué habilitar.
type NextAction string

const (
	ActionUploadDocuments    NextAction = "upload_documents"
	ActionWaitDocumentReview NextAction = "wait_document_review"
	ActionSelectAnimal       NextAction = "select_animal"
	ActionBookAppointment    NextAction = "book_appointment"
	ActionAttendVisit        NextAction = "attend_visit"
	ActionWaitAdminDecision  NextAction = "wait_admin_decision"
	ActionCompleteFinalForm  NextAction = "complete_final_form"
	ActionWaitReview         NextAction = "wait_review"
	ActionNone               NextAction = "none"
)

// ApplicantPhase es el modelo de lectura completo para la pantalla del postulante.
type ApplicantPhase struct {
	ApplicantID     string
	Phase           Phase
	Step            int
	NextAction      NextAction
	DocumentsStatus documents.AggregateStatus

	Request     *requests.Request
	Animal      *animals.Animal
	Appointment *appointments.Appointment
	Adoption    *adoptions.Adoption
}

// Orchestrator compone el estado de todos los componentes sin escribir nada.
type Orchestrator struct {
	*base
}

// ForActor aplica control de acceso sobre GetApplicantPhase.
func (o *Orchestrator) ForActor(ctx context.Context, actor auth.Actor, applicantID string) (ApplicantPhase, error) {
	if err := requireSelfOrAdmin(actor, applicantID); err != nil {
		return ApplicantPhase{}, err
	}
	return o.GetApplicantPhase(ctx, applicantID)
}

// GetApplicantPhase lee siempre del store (sin cache) y tolera ausencias en cada etapa.
func (o *Orchestrator) GetApplicantPhase(ctx context.Context, applicantID string) (ApplicantPhase, error) {
	out := ApplicantPhase{ApplicantID: applicantID}

	docsStatus, err := o.aggregate(ctx, o.store, applicantID)
	if err != nil {
		return ApplicantPhase{}, err
	}
	out.DocumentsStatus = docsStatus

	reqs, err := o.store.Requests().ListByApplicant(ctx, applicantID)
	if err != nil {
		return ApplicantPhase{}, err
	}
	current := requests.Current(reqs)
	if current == nil {
		return out.with(PhaseSelectAnimal, documentsAction(docsStatus)), nil
	}
	out.Request = current

	if a, err := o.store.Animals().GetByID(ctx, current.AnimalID); err == nil {
		out.Animal = &a
	} else if !apperr.IsNotFound(err) {
		return ApplicantPhase{}, err
	}

	appts, err := o.store.Appointments().ListByRequest(ctx, current.ID)
	if err != nil {
		return ApplicantPhase{}, err
	}
	latest := appointments.Latest(appts)
	out.Appointment = latest

	if ad, err := o.store.Adoptions().GetByRequest(ctx, current.ID); err == nil {
		out.Adoption = &ad
	} else if !apperr.IsNotFound(err) {
		return ApplicantPhase{}, err
	}

	if out.Adoption != nil {
		switch out.Adoption.Status {
		case adoptions.StatusApproved:
			return out.with(PhaseAdopted, ActionNone), nil
		case adoptions.StatusRejected:
			return out.with(PhaseRejected, ActionNone), nil
		default:
			return out.with(PhaseUnderReview, ActionWaitReview), nil
		}
	}

	switch current.Status {
	case requests.StatusCompleted:
		return out.with(PhaseAdopted, ActionNone), nil
	case requests.StatusRejected:
		return out.with(PhaseRejected, ActionNone), nil
	case requests.StatusPending:
		return out.with(PhaseBookAppointment, ActionBookAppointment), nil
	}

	switch {
	case latest == nil:
		return out.with(PhaseBookAppointment, ActionBookAppointment), nil
	case latest.Status == appointments.StatusScheduled:
		return out.with(PhaseAwaitingVisit, ActionAttendVisit), nil
	case latest.Approved():
		return out.with(PhaseCompleteFinalForm, ActionCompleteFinalForm), nil
	default:
		return out.with(PhaseVisitUnsuccessful, ActionWaitAdminDecision), nil
	}
}

func (p ApplicantPhase) with(phase Phase, next NextAction) ApplicantPhase {
	p.Phase = phase
	p.Step = phase.Step()
	p.NextAction = next
	return p
}

// documentsAction: sin pedido, lo que falta depende del estado documental.
func documentsAction(st documents.AggregateStatus) NextAction {
	switch st {
	case documents.AggregateApproved:
		return ActionSelectAnimal
	case documents.AggregateInReview:
		return ActionWaitDocumentReview
	default:
		return ActionUploadDocuments
	}
}
