package memory

import (
	"context"
	"sort"
	"strings"

	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"
)

type requestRepo repos

var errActiveRequest = apperr.Conflict("applicant already has an active adoption request")

// activeConflict emula adoption_requests_active_applicant_uq.
func activeConflict(st *state, r requests.Request) bool {
	if !r.Status.IsActive() {
		return false
	}
	for _, other := range st.requests {
		if other.ID != r.ID && other.ApplicantID == r.ApplicantID && other.Status.IsActive() {
			return true
		}
	}
	return false
}

func (r requestRepo) Create(_ context.Context, req requests.Request) error {
	if strings.TrimSpace(req.ID) == "" {
		return apperr.Validation("request id required")
	}
	return r.with(func(st *state) error {
		if _, exists := st.requests[req.ID]; exists {
			return apperr.Conflict("request already exists")
		}
		if activeConflict(st, req) {
			return errActiveRequest
		}
		st.requests[req.ID] = req
		st.track(req.ID)
		return nil
	})
}

func (r requestRepo) Update(_ context.Context, req requests.Request) error {
	return r.with(func(st *state) error {
		if _, exists := st.requests[req.ID]; !exists {
			return apperr.NotFound("adoption request")
		}
		if activeConflict(st, req) {
			return errActiveRequest
		}
		st.requests[req.ID] = req
		return nil
	})
}

func (r requestRepo) GetByID(_ context.Context, id string) (requests.Request, error) {
	var out requests.Request
	err := r.with(func(st *state) error {
		req, ok := st.requests[id]
		if !ok {
			return apperr.NotFound("adoption request")
		}
		out = req
		return nil
	})
	return out, err
}

func (r requestRepo) ListByApplicant(_ context.Context, applicantID string) ([]requests.Request, error) {
	out := make([]requests.Request, 0)
	err := r.with(func(st *state) error {
		for _, req := range st.requests {
			if req.ApplicantID == applicantID {
				out = append(out, req)
			}
		}
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
