package lifecycle

import (
	"context"
	"strings"
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/notify"
	"pet-adoption/internal/ports/store"

	"github.com/google/uuid"
)

// Finalizer abre la revisión final y aplica la decisión del administrador.
type Finalizer struct {
	*base
}

// Review devuelve la adopción del pedido o la crea en pending.
// Sólo se puede abrir si la última visita terminó con attended + approved.
func (s *Finalizer) Review(ctx context.Context, actor auth.Actor, requestID, applicantNotes string) (adoptions.Adoption, error) {
	if err := requireActor(actor); err != nil {
		return adoptions.Adoption{}, err
	}

	var out adoptions.Adoption
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		r, err := tx.Requests().GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := requireSelfOrAdmin(actor, r.ApplicantID); err != nil {
			return err
		}

		existing, err := tx.Adoptions().GetByRequest(ctx, r.ID)
		if err == nil {
			out = existing
			return nil
		}
		if !apperr.IsNotFound(err) {
			return err
		}

		if r.Status != requests.StatusInProgress {
			return apperr.Conflict("adoption request is " + string(r.Status) + ", expected in_progress")
		}
		appts, err := tx.Appointments().ListByRequest(ctx, r.ID)
		if err != nil {
			return err
		}
		latest := appointments.Latest(appts)
		if latest == nil || !latest.Approved() {
			return apperr.Conflict("the visit must be completed with an approved interaction first")
		}

		now := s.now()
		out = adoptions.Adoption{
			ID:             uuid.NewString(),
			RequestID:      r.ID,
			ApplicantID:    r.ApplicantID,
			AnimalID:       r.AnimalID,
			Status:         adoptions.StatusPending,
			ApplicantNotes: strings.TrimSpace(applicantNotes),
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		return tx.Adoptions().Create(ctx, out)
	})
	if apperr.IsConflict(err) {
		// Otro review concurrente ganó el índice único: devolvemos esa fila.
		if existing, gerr := s.store.Adoptions().GetByRequest(ctx, requestID); gerr == nil {
			return existing, nil
		}
	}
	if err != nil {
		return adoptions.Adoption{}, err
	}
	return out, nil
}

type DecideInput struct {
	AdoptionID   string
	Decision     string // approved | rejected
	Notes        string
	ContractRef  string
	FollowUpDate *time.Time
}

// Decide cierra la adopción. Adopción, animal y pedido se actualizan en una sola transacción.
// En aprobación el certificado se genera y se guarda antes: si falla no se escribe nada.
func (s *Finalizer) Decide(ctx context.Context, actor auth.Actor, in DecideInput) (adoptions.Adoption, error) {
	if err := requireAdmin(actor); err != nil {
		return adoptions.Adoption{}, err
	}
	decision, ok := adoptions.ParseDecision(in.Decision)
	if !ok {
		return adoptions.Adoption{}, apperr.Validation("decision must be approved or rejected")
	}
	in.Notes = strings.TrimSpace(in.Notes)
	in.ContractRef = strings.TrimSpace(in.ContractRef)
	if decision == adoptions.StatusRejected && in.Notes == "" {
		return adoptions.Adoption{}, apperr.Validation("a rejection must include notes with the reason")
	}

	now := s.now()
	if in.FollowUpDate != nil {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if in.FollowUpDate.Before(today) {
			return adoptions.Adoption{}, apperr.Validation("follow_up_date cannot be in the past")
		}
	}

	current, err := s.store.Adoptions().GetByID(ctx, in.AdoptionID)
	if err != nil {
		return adoptions.Adoption{}, err
	}
	if current.Status != adoptions.StatusPending {
		return adoptions.Adoption{}, apperr.Conflict("adoption was already decided")
	}

	var certKey string
	if decision == adoptions.StatusApproved {
		certKey, err = s.storeCertificate(ctx, current, in, actor.ID, now)
		if err != nil {
			return adoptions.Adoption{}, err
		}
	}

	var out adoptions.Adoption
	err = s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		a, err := tx.Adoptions().GetByID(ctx, in.AdoptionID)
		if err != nil {
			return err
		}
		if a.Status != adoptions.StatusPending {
			return apperr.Conflict("adoption was already decided")
		}

		r, err := tx.Requests().GetByID(ctx, a.RequestID)
		if err != nil {
			return err
		}

		animalTo, requestTo := animals.StateAvailable, requests.StatusRejected
		if decision == adoptions.StatusApproved {
			animalTo, requestTo = animals.StateAdopted, requests.StatusCompleted
		}

		a.Status = decision
		a.DecisionNotes = in.Notes
		a.ContractRef = in.ContractRef
		a.FollowUpDate = in.FollowUpDate
		a.CertificateKey = certKey
		a.ReviewedBy = actor.ID
		a.ReviewedAt = &now
		a.UpdatedAt = now
		if err := tx.Adoptions().Update(ctx, a); err != nil {
			return err
		}

		if _, err := tx.Animals().TransitionState(ctx, a.AnimalID, animals.StateReserved, animalTo, now); err != nil {
			return err
		}

		if err := requests.Transition(&r, requestTo, now); err != nil {
			return err
		}
		if err := tx.Requests().Update(ctx, r); err != nil {
			return err
		}

		out = a
		return nil
	})
	if err != nil {
		return adoptions.Adoption{}, err
	}

	s.log.Info("adoption decided", map[string]any{
		"adoption_id": out.ID,
		"request_id":  out.RequestID,
		"decision":    string(out.Status),
		"reviewed_by": out.ReviewedBy,
	})

	if decision == adoptions.StatusApproved {
		data := map[string]string{
			"adoption_id":     out.ID,
			"animal_id":       out.AnimalID,
			"certificate_key": out.CertificateKey,
		}
		if u, err := s.files.URL(ctx, out.CertificateKey); err == nil {
			data["certificate_url"] = u
		} else {
			s.log.Warn("certificate url unavailable", map[string]any{"adoption_id": out.ID, "err": err})
		}
		s.dispatch(ctx, notify.EventAdoptionApproved, out.ApplicantID, data)
	} else {
		s.dispatch(ctx, notify.EventAdoptionRejected, out.ApplicantID, map[string]string{
			"adoption_id": out.ID,
			"animal_id":   out.AnimalID,
			"reason":      out.DecisionNotes,
		})
	}
	return out, nil
}

func (s *Finalizer) Get(ctx context.Context, actor auth.Actor, adoptionID string) (adoptions.Adoption, error) {
	if err := requireActor(actor); err != nil {
		return adoptions.Adoption{}, err
	}
	a, err := s.store.Adoptions().GetByID(ctx, adoptionID)
	if err != nil {
		return adoptions.Adoption{}, err
	}
	if err := requireSelfOrAdmin(actor, a.ApplicantID); err != nil {
		return adoptions.Adoption{}, err
	}
	return a, nil
}

func (s *Finalizer) storeCertificate(ctx context.Context, a adoptions.Adoption, in DecideInput, reviewer string, at time.Time) (string, error) {
	if s.files == nil {
		return "", apperr.Dependency("file storage not configured", nil)
	}
	animal, err := s.store.Animals().GetByID(ctx, a.AnimalID)
	if err != nil {
		return "", err
	}

	body, err := renderCertificate(a, animal, in, reviewer, at)
	if err != nil {
		return "", apperr.Dependency("could not render certificate", err)
	}
	key := certificateKey(a.ID)
	if err := s.files.Put(ctx, key, certificateContentType, body); err != nil {
		return "", apperr.Dependency("could not store certificate", err)
	}
	return key, nil
}
