package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/platform/apperr"
)

type animalRepo repos

func (r animalRepo) Create(_ context.Context, a animals.Animal) error {
	if strings.TrimSpace(a.ID) == "" {
		return apperr.Validation("animal id required")
	}
	return r.with(func(st *state) error {
		if _, exists := st.animals[a.ID]; exists {
			return apperr.Conflict("animal already exists")
		}
		st.animals[a.ID] = a
		st.track(a.ID)
		return nil
	})
}

func (r animalRepo) GetByID(_ context.Context, id string) (animals.Animal, error) {
	var out animals.Animal
	err := r.with(func(st *state) error {
		a, ok := st.animals[id]
		if !ok {
			return apperr.NotFound("animal")
		}
		out = a
		return nil
	})
	return out, err
}

func (r animalRepo) List(_ context.Context, f animals.ListFilter) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0)
	err := r.with(func(st *state) error {
		for _, a := range st.animals {
			if f.State != "" && a.State != f.State {
				continue
			}
			if f.Species != "" && a.Species != f.Species {
				continue
			}
			out = append(out, a)
		}

		// Orden estable por created_at asc (igual que el catálogo en Postgres)
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			}
			return st.order[out[i].ID] < st.order[out[j].ID]
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r animalRepo) TransitionState(_ context.Context, id string, from, to animals.State, at time.Time) (animals.Animal, error) {
	var out animals.Animal
	err := r.with(func(st *state) error {
		a, ok := st.animals[id]
		if !ok {
			return apperr.NotFound("animal")
		}
		if a.State != from {
			return apperr.Conflict("animal is " + string(a.State) + ", expected " + string(from))
		}
		a.State = to
		a.UpdatedAt = at
		st.animals[id] = a
		out = a
		return nil
	})
	return out, err
}
