package lifecycle

import (
	"context"
	"strings"

	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/notify"
	"pet-adoption/internal/ports/store"

	"github.com/google/uuid"
)

// Scheduler agenda, mueve, cancela y evalúa visitas.
// La unicidad del slot la garantiza el store (índice único parcial / lock del store en memoria).
type Scheduler struct {
	*base
}

type ConfirmInput struct {
	RequestID   string
	ApplicantID string
	AnimalID    string // opcional: si viene vacío se toma del pedido
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
}

// Confirm reserva el slot para el pedido y lo pasa a in_progress.
func (s *Scheduler) Confirm(ctx context.Context, actor auth.Actor, in ConfirmInput) (appointments.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return appointments.Appointment{}, err
	}
	applicantID := strings.TrimSpace(in.ApplicantID)
	if applicantID == "" {
		applicantID = actor.ID
	}
	if actor.ID != applicantID {
		return appointments.Appointment{}, apperr.Authorization("only the applicant can book an appointment")
	}

	date, clock := strings.TrimSpace(in.Date), strings.TrimSpace(in.Time)
	if _, err := s.policy.Validate(date, clock, s.now()); err != nil {
		return appointments.Appointment{}, err
	}

	var out appointments.Appointment
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		r, err := tx.Requests().GetByID(ctx, in.RequestID)
		if err != nil {
			return err
		}
		if r.ApplicantID != applicantID {
			return apperr.Conflict("adoption request belongs to another applicant")
		}
		if in.AnimalID != "" && in.AnimalID != r.AnimalID {
			return apperr.Conflict("adoption request is for another animal")
		}
		if r.Status != requests.StatusPending {
			return apperr.Conflict("adoption request is " + string(r.Status) + ", expected pending")
		}

		appts, err := tx.Appointments().ListByRequest(ctx, r.ID)
		if err != nil {
			return err
		}
		if appointments.Scheduled(appts) != nil {
			return apperr.Conflict("adoption request already has a scheduled appointment")
		}

		now := s.now()
		out = appointments.Appointment{
			ID:          uuid.NewString(),
			RequestID:   r.ID,
			ApplicantID: r.ApplicantID,
			AnimalID:    r.AnimalID,
			Date:        date,
			Time:        clock,
			Status:      appointments.StatusScheduled,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Appointments().Create(ctx, out); err != nil {
			return err
		}

		if err := requests.Transition(&r, requests.StatusInProgress, now); err != nil {
			return err
		}
		return tx.Requests().Update(ctx, r)
	})
	if err != nil {
		return appointments.Appointment{}, err
	}

	s.dispatch(ctx, notify.EventAppointmentBooked, out.ApplicantID, slotData(out))
	return out, nil
}

// Cancel libera el slot y devuelve el pedido a pending para que pueda reagendar.
// Cancelar una visita ya cancelada no hace nada. Una visita completada sólo la
// cancela un administrador, si es la última del pedido y no hay revisión final abierta.
func (s *Scheduler) Cancel(ctx context.Context, actor auth.Actor, appointmentID string) (appointments.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return appointments.Appointment{}, err
	}

	var (
		out     appointments.Appointment
		changed bool
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		a, err := tx.Appointments().GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		if err := requireSelfOrAdmin(actor, a.ApplicantID); err != nil {
			return err
		}

		out = a
		if a.Status == appointments.StatusCancelled {
			return nil
		}

		r, err := tx.Requests().GetByID(ctx, a.RequestID)
		if err != nil {
			return err
		}
		siblings, err := tx.Appointments().ListByRequest(ctx, r.ID)
		if err != nil {
			return err
		}

		if a.Status == appointments.StatusCompleted {
			// La evaluación ya la hizo un humano; deshacerla no queda en manos del postulante.
			if err := requireAdmin(actor); err != nil {
				return err
			}
			if latest := appointments.Latest(siblings); latest == nil || latest.ID != a.ID {
				return apperr.Conflict("only the latest visit of the request can be cancelled")
			}
			if r.Status != requests.StatusInProgress {
				return apperr.Conflict("the adoption request has moved past this visit")
			}
			if _, err := tx.Adoptions().GetByRequest(ctx, r.ID); err == nil {
				return apperr.Conflict("a final review is already open for this request")
			} else if !apperr.IsNotFound(err) {
				return err
			}
		}

		now := s.now()
		a.Status = appointments.StatusCancelled
		a.UpdatedAt = now
		if err := tx.Appointments().Update(ctx, a); err != nil {
			return err
		}

		if r.Status == requests.StatusInProgress && !hasOtherScheduled(siblings, a.ID) {
			if err := requests.Transition(&r, requests.StatusPending, now); err != nil {
				return err
			}
			if err := tx.Requests().Update(ctx, r); err != nil {
				return err
			}
		}

		out = a
		changed = true
		return nil
	})
	if err != nil {
		return appointments.Appointment{}, err
	}

	if changed {
		s.dispatch(ctx, notify.EventAppointmentCanceled, out.ApplicantID, slotData(out))
	}
	return out, nil
}

func hasOtherScheduled(items []appointments.Appointment, id string) bool {
	for _, it := range items {
		if it.ID != id && it.Status == appointments.StatusScheduled {
			return true
		}
	}
	return false
}

// Reschedule mueve una visita agendada a otro slot con las mismas reglas que Confirm.
func (s *Scheduler) Reschedule(ctx context.Context, actor auth.Actor, appointmentID, date, clock string) (appointments.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return appointments.Appointment{}, err
	}
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if _, err := s.policy.Validate(date, clock, s.now()); err != nil {
		return appointments.Appointment{}, err
	}

	var (
		out     appointments.Appointment
		changed bool
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		a, err := tx.Appointments().GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}
		if err := requireSelfOrAdmin(actor, a.ApplicantID); err != nil {
			return err
		}
		if a.Status != appointments.StatusScheduled {
			return apperr.Conflict("only scheduled appointments can be rescheduled")
		}

		out = a
		if a.Date == date && a.Time == clock {
			return nil
		}

		a.Date = date
		a.Time = clock
		a.UpdatedAt = s.now()
		if err := tx.Appointments().Update(ctx, a); err != nil {
			return err
		}
		out = a
		changed = true
		return nil
	})
	if err != nil {
		return appointments.Appointment{}, err
	}

	if changed {
		s.dispatch(ctx, notify.EventAppointmentMoved, out.ApplicantID, slotData(out))
	}
	return out, nil
}

type EvaluateInput struct {
	AppointmentID string
	Attendance    string
	Interaction   string
	Note          string
}

// Evaluate registra el resultado de la visita. Sólo attended+approved habilita el formulario final;
// un resultado negativo deja el pedido en in_progress hasta que un admin lo reabra o se cancele.
func (s *Scheduler) Evaluate(ctx context.Context, actor auth.Actor, in EvaluateInput) (appointments.Appointment, error) {
	if err := requireAdmin(actor); err != nil {
		return appointments.Appointment{}, err
	}

	attendance, ok := appointments.ParseAttendance(in.Attendance)
	if !ok {
		return appointments.Appointment{}, apperr.Validation("attendance must be attended or no_show")
	}
	interaction, ok := appointments.ParseInteraction(in.Interaction)
	if !ok {
		return appointments.Appointment{}, apperr.Validation("interaction must be approved or unfit")
	}
	switch attendance {
	case appointments.AttendanceAttended:
		if interaction == "" {
			return appointments.Appointment{}, apperr.Validation("interaction is required when the applicant attended")
		}
	case appointments.AttendanceNoShow:
		interaction = ""
	}

	var out appointments.Appointment
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		a, err := tx.Appointments().GetByID(ctx, in.AppointmentID)
		if err != nil {
			return err
		}
		if a.Status != appointments.StatusScheduled {
			return apperr.Conflict("only scheduled appointments can be evaluated")
		}

		now := s.now()
		a.Status = appointments.StatusCompleted
		a.Attendance = attendance
		a.Interaction = interaction
		a.Note = strings.TrimSpace(in.Note)
		a.EvaluatedBy = actor.ID
		a.EvaluatedAt = &now
		a.UpdatedAt = now
		out = a
		return tx.Appointments().Update(ctx, a)
	})
	if err != nil {
		return appointments.Appointment{}, err
	}

	data := slotData(out)
	data["attendance"] = string(out.Attendance)
	data["interaction"] = string(out.Interaction)
	s.dispatch(ctx, notify.EventAppointmentReviewed, out.ApplicantID, data)
	return out, nil
}

// AvailableSlots devuelve los horarios libres del día (se recalcula siempre).
func (s *Scheduler) AvailableSlots(ctx context.Context, date string) ([]string, error) {
	date = strings.TrimSpace(date)
	now := s.now()
	if _, err := s.policy.ValidateDate(date, now); err != nil {
		return nil, err
	}
	taken, err := s.store.Appointments().ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.policy.Free(date, taken, now)
}

func (s *Scheduler) Get(ctx context.Context, actor auth.Actor, appointmentID string) (appointments.Appointment, error) {
	if err := requireActor(actor); err != nil {
		return appointments.Appointment{}, err
	}
	a, err := s.store.Appointments().GetByID(ctx, appointmentID)
	if err != nil {
		return appointments.Appointment{}, err
	}
	if err := requireSelfOrAdmin(actor, a.ApplicantID); err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}

func slotData(a appointments.Appointment) map[string]string {
	return map[string]string{
		"appointment_id": a.ID,
		"request_id":     a.RequestID,
		"animal_id":      a.AnimalID,
		"date":           a.Date,
		"time":           a.Time,
	}
}
