package animals

import (
	"context"
	"time"
)

// ListFilter: campos vacíos no filtran. Limit <= 0 => sin límite.
type ListFilter struct {
	State   State
	Species Species
	Limit   int
}

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context, f ListFilter) ([]Animal, error)

	// TransitionState es un compare-and-set: cambia from -> to sólo si el estado actual es from.
	// Si el estado no coincide devuelve ConflictError; si no existe, NotFoundError.
	TransitionState(ctx context.Context, id string, from, to State, at time.Time) (Animal, error)
}
