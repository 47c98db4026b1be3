package memory

import (
	"context"
	"strings"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/platform/apperr"
)

type adoptionRepo repos

func (r adoptionRepo) Create(_ context.Context, a adoptions.Adoption) error {
	if strings.TrimSpace(a.ID) == "" {
		return apperr.Validation("adoption id required")
	}
	return r.with(func(st *state) error {
		if _, exists := st.adoptions[a.ID]; exists {
			return apperr.Conflict("adoption already exists")
		}
		for _, other := range st.adoptions {
			if other.RequestID == a.RequestID {
				return apperr.Conflict("an adoption review already exists for this request")
			}
		}
		st.adoptions[a.ID] = a
		st.track(a.ID)
		return nil
	})
}

func (r adoptionRepo) Update(_ context.Context, a adoptions.Adoption) error {
	return r.with(func(st *state) error {
		if _, exists := st.adoptions[a.ID]; !exists {
			return apperr.NotFound("adoption")
		}
		st.adoptions[a.ID] = a
		return nil
	})
}

func (r adoptionRepo) GetByID(_ context.Context, id string) (adoptions.Adoption, error) {
	var out adoptions.Adoption
	err := r.with(func(st *state) error {
		a, ok := st.adoptions[id]
		if !ok {
			return apperr.NotFound("adoption")
		}
		out = a
		return nil
	})
	return out, err
}

func (r adoptionRepo) GetByRequest(_ context.Context, requestID string) (adoptions.Adoption, error) {
	var out adoptions.Adoption
	err := r.with(func(st *state) error {
		for _, a := range st.adoptions {
			if a.RequestID == requestID {
				out = a
				return nil
			}
		}
		return apperr.NotFound("adoption")
	})
	return out, err
}
