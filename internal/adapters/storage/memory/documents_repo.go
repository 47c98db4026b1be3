package memory

import (
	"context"
	"sort"
	"strings"

	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/platform/apperr"
)

type documentRepo repos

func (r documentRepo) Create(_ context.Context, d documents.Document) error {
	if strings.TrimSpace(d.ID) == "" {
		return apperr.Validation("document id required")
	}
	return r.with(func(st *state) error {
		if _, exists := st.documents[d.ID]; exists {
			return apperr.Conflict("document already exists")
		}
		// Igual que documents_applicant_type_uq en Postgres.
		for _, other := range st.documents {
			if other.ApplicantID == d.ApplicantID && other.Type == d.Type {
				return apperr.Conflict("a " + string(d.Type) + " document was already uploaded")
			}
		}
		st.documents[d.ID] = d
		st.track(d.ID)
		return nil
	})
}

func (r documentRepo) Update(_ context.Context, d documents.Document) error {
	return r.with(func(st *state) error {
		if _, exists := st.documents[d.ID]; !exists {
			return apperr.NotFound("document")
		}
		st.documents[d.ID] = d
		return nil
	})
}

func (r documentRepo) GetByID(_ context.Context, id string) (documents.Document, error) {
	var out documents.Document
	err := r.with(func(st *state) error {
		d, ok := st.documents[id]
		if !ok {
			return apperr.NotFound("document")
		}
		out = d
		return nil
	})
	return out, err
}

func (r documentRepo) GetByApplicantType(_ context.Context, applicantID string, t documents.Type) (documents.Document, error) {
	var out documents.Document
	err := r.with(func(st *state) error {
		for _, d := range st.documents {
			if d.ApplicantID == applicantID && d.Type == t {
				out = d
				return nil
			}
		}
		return apperr.NotFound("document")
	})
	return out, err
}

func (r documentRepo) ListByApplicant(_ context.Context, applicantID string) ([]documents.Document, error) {
	out := make([]documents.Document, 0)
	err := r.with(func(st *state) error {
		for _, d := range st.documents {
			if d.ApplicantID == applicantID {
				out = append(out, d)
			}
		}
		sort.Slice(out, func(i, j int) bool {
			return st.order[out[i].ID] < st.order[out[j].ID]
		})
		return nil
	})
	return out, err
}

// LockApplicant no hace nada: WithTx ya corre bajo el mutex del store.
func (r documentRepo) LockApplicant(context.Context, string) error { return nil }
