package memory

import (
	"context"
	"sort"
	"strings"

	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/platform/apperr"
)

type appointmentRepo repos

// slotTaken emula appointments_active_slot_uq.
func slotTaken(st *state, a appointments.Appointment) bool {
	if a.Status == appointments.StatusCancelled {
		return false
	}
	for _, other := range st.appointments {
		if other.ID == a.ID || other.Status == appointments.StatusCancelled {
			continue
		}
		if other.Date == a.Date && other.Time == a.Time {
			return true
		}
	}
	return false
}

func slotConflict(a appointments.Appointment) error {
	return apperr.SlotConflict("slot " + a.Date + " " + a.Time + " is already taken")
}

func (r appointmentRepo) Create(_ context.Context, a appointments.Appointment) error {
	if strings.TrimSpace(a.ID) == "" {
		return apperr.Validation("appointment id required")
	}
	return r.with(func(st *state) error {
		if _, exists := st.appointments[a.ID]; exists {
			return apperr.Conflict("appointment already exists")
		}
		if slotTaken(st, a) {
			return slotConflict(a)
		}
		st.appointments[a.ID] = a
		st.track(a.ID)
		return nil
	})
}

func (r appointmentRepo) Update(_ context.Context, a appointments.Appointment) error {
	return r.with(func(st *state) error {
		if _, exists := st.appointments[a.ID]; !exists {
			return apperr.NotFound("appointment")
		}
		if slotTaken(st, a) {
			return slotConflict(a)
		}
		st.appointments[a.ID] = a
		return nil
	})
}

func (r appointmentRepo) GetByID(_ context.Context, id string) (appointments.Appointment, error) {
	var out appointments.Appointment
	err := r.with(func(st *state) error {
		a, ok := st.appointments[id]
		if !ok {
			return apperr.NotFound("appointment")
		}
		out = a
		return nil
	})
	return out, err
}

func (r appointmentRepo) ListByRequest(_ context.Context, requestID string) ([]appointments.Appointment, error) {
	return r.list(func(a appointments.Appointment) bool { return a.RequestID == requestID })
}

func (r appointmentRepo) ListByApplicant(_ context.Context, applicantID string) ([]appointments.Appointment, error) {
	return r.list(func(a appointments.Appointment) bool { return a.ApplicantID == applicantID })
}

func (r appointmentRepo) ListByDate(_ context.Context, date string) ([]appointments.Appointment, error) {
	return r.list(func(a appointments.Appointment) bool {
		return a.Date == date && a.Status != appointments.StatusCancelled
	})
}

func (r appointmentRepo) list(match func(appointments.Appointment) bool) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	err := r.with(func(st *state) error {
		for _, a := range st.appointments {
			if match(a) {
				out = append(out, a)
			}
		}
		// Más nueva primero
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return st.order[out[i].ID] > st.order[out[j].ID]
		})
		return nil
	})
	return out, err
}
