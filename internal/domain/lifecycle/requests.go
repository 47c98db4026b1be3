package lifecycle

import (
	"context"
	"strings"
	"time"

	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/notify"
	"pet-adoption/internal/ports/store"

	"github.com/google/uuid"
)

// RequestService es la máquina de estados del pedido de adopción.
type RequestService struct {
	*base
}

// Create abre un pedido y reserva el animal en la misma transacción.
// El índice único de pedidos activos cubre la carrera entre dos creates simultáneos.
func (s *RequestService) Create(ctx context.Context, actor auth.Actor, applicantID, animalID string) (requests.Request, error) {
	applicantID = strings.TrimSpace(applicantID)
	animalID = strings.TrimSpace(animalID)
	if err := requireSelfOrAdmin(actor, applicantID); err != nil {
		return requests.Request{}, err
	}
	if applicantID == "" || animalID == "" {
		return requests.Request{}, apperr.Validation("applicant_id and animal_id are required")
	}

	var out requests.Request
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		if err := tx.Documents().LockApplicant(ctx, applicantID); err != nil {
			return err
		}
		status, err := s.aggregate(ctx, tx, applicantID)
		if err != nil {
			return err
		}
		if status != documents.AggregateApproved {
			return apperr.Validationf("documents must be approved before requesting an adoption (current: %s)", status)
		}

		existing, err := tx.Requests().ListByApplicant(ctx, applicantID)
		if err != nil {
			return err
		}
		if requests.Active(existing) != nil {
			return apperr.Conflict("applicant already has an active adoption request")
		}

		appts, err := tx.Appointments().ListByApplicant(ctx, applicantID)
		if err != nil {
			return err
		}
		if appointments.Scheduled(appts) != nil {
			return apperr.Conflict("applicant already has a scheduled appointment")
		}

		animal, err := tx.Animals().GetByID(ctx, animalID)
		if err != nil {
			return err
		}
		if animal.State != animals.StateAvailable {
			return apperr.Conflict("animal is not available for adoption")
		}

		now := s.now()
		if _, err := tx.Animals().TransitionState(ctx, animalID, animals.StateAvailable, animals.StateReserved, now); err != nil {
			return err
		}

		out = requests.Request{
			ID:          uuid.NewString(),
			ApplicantID: applicantID,
			AnimalID:    animalID,
			Status:      requests.StatusPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.Requests().Create(ctx, out)
	})
	if err != nil {
		return requests.Request{}, err
	}

	s.log.Info("adoption request created", map[string]any{
		"request_id":   out.ID,
		"applicant_id": out.ApplicantID,
		"animal_id":    out.AnimalID,
	})
	return out, nil
}

// Cancel es idempotente: cancelar un pedido ya cancelado no hace nada.
// Cancela la visita agendada (si hay) y libera el animal.
func (s *RequestService) Cancel(ctx context.Context, actor auth.Actor, requestID string) (requests.Request, error) {
	if err := requireActor(actor); err != nil {
		return requests.Request{}, err
	}

	var (
		out     requests.Request
		changed bool
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		r, err := tx.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := requireSelfOrAdmin(actor, r.ApplicantID); err != nil {
			return err
		}

		out = r
		switch r.Status {
		case requests.StatusCancelled:
			return nil
		case requests.StatusCompleted, requests.StatusRejected:
			return apperr.Conflict("adoption request is already closed")
		}

		now := s.now()
		appts, err := tx.Appointments().ListByRequest(ctx, r.ID)
		if err != nil {
			return err
		}
		if a := appointments.Scheduled(appts); a != nil {
			a.Status = appointments.StatusCancelled
			a.UpdatedAt = now
			if err := tx.Appointments().Update(ctx, *a); err != nil {
				return err
			}
		}

		if err := requests.Transition(&r, requests.StatusCancelled, now); err != nil {
			return err
		}
		if err := tx.Requests().Update(ctx, r); err != nil {
			return err
		}
		if err := releaseAnimal(ctx, tx, r.AnimalID, now); err != nil {
			return err
		}

		out = r
		changed = true
		return nil
	})
	if err != nil {
		return requests.Request{}, err
	}

	if changed {
		s.dispatch(ctx, notify.EventRequestCancelled, out.ApplicantID, map[string]string{
			"request_id": out.ID,
			"animal_id":  out.AnimalID,
		})
	}
	return out, nil
}

// Reopen devuelve a pending un pedido cuya última visita fue evaluada negativamente,
// para que el postulante pueda reagendar. Sólo administradores.
func (s *RequestService) Reopen(ctx context.Context, actor auth.Actor, requestID string) (requests.Request, error) {
	if err := requireAdmin(actor); err != nil {
		return requests.Request{}, err
	}

	var out requests.Request
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		r, err := tx.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if r.Status != requests.StatusInProgress {
			return apperr.Conflict("only in-progress requests can be reopened")
		}

		appts, err := tx.Appointments().ListByRequest(ctx, r.ID)
		if err != nil {
			return err
		}
		latest := appointments.Latest(appts)
		if latest == nil || !latest.EvaluatedNegative() {
			return apperr.Conflict("request can only be reopened after an unsuccessful visit")
		}

		if err := requests.Transition(&r, requests.StatusPending, s.now()); err != nil {
			return err
		}
		out = r
		return tx.Requests().Update(ctx, r)
	})
	if err != nil {
		return requests.Request{}, err
	}

	s.dispatch(ctx, notify.EventRequestReopened, out.ApplicantID, map[string]string{
		"request_id": out.ID,
	})
	return out, nil
}

func (s *RequestService) Get(ctx context.Context, actor auth.Actor, requestID string) (requests.Request, error) {
	if err := requireActor(actor); err != nil {
		return requests.Request{}, err
	}
	r, err := s.store.Requests().GetByID(ctx, requestID)
	if err != nil {
		return requests.Request{}, err
	}
	if err := requireSelfOrAdmin(actor, r.ApplicantID); err != nil {
		return requests.Request{}, err
	}
	return r, nil
}

func (s *RequestService) ListByApplicant(ctx context.Context, actor auth.Actor, applicantID string) ([]requests.Request, error) {
	if err := requireSelfOrAdmin(actor, applicantID); err != nil {
		return nil, err
	}
	return s.store.Requests().ListByApplicant(ctx, applicantID)
}

// releaseAnimal pasa el animal de reserved a available.
// Si ya no estaba reservado (p.ej. lo movió un admin) no hay nada que liberar.
func releaseAnimal(ctx context.Context, tx store.Repos, animalID string, at time.Time) error {
	_, err := tx.Animals().TransitionState(ctx, animalID, animals.StateReserved, animals.StateAvailable, at)
	if err != nil && (apperr.IsConflict(err) || apperr.IsNotFound(err)) {
		return nil
	}
	return err
}
