package requests

import (
	"time"

	"pet-adoption/internal/platform/apperr"
)

var allowed = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusPending, StatusCancelled, StatusCompleted, StatusRejected},
}

// CanTransition indica si from -> to es un movimiento válido.
func CanTransition(from, to Status) bool {
	for _, s := range allowed[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition aplica el cambio sobre r o devuelve ConflictError.
// Al entrar en un estado terminal se setea ClosedAt.
func Transition(r *Request, to Status, at time.Time) error {
	if !CanTransition(r.Status, to) {
		return apperr.Conflict("request cannot move from " + string(r.Status) + " to " + string(to))
	}
	r.Status = to
	r.UpdatedAt = at
	if to.IsTerminal() {
		closed := at
		r.ClosedAt = &closed
	}
	return nil
}
