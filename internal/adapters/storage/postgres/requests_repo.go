package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"

	sq "github.com/Masterminds/squirrel"
)

type requestRepo repos

var requestColumns = []string{
	"id", "applicant_id", "animal_id", "status",
	"created_at", "updated_at", "closed_at",
}

func scanRequest(s scanner) (requests.Request, error) {
	var (
		r  requests.Request
		ca sql.NullTime
	)
	err := s.Scan(&r.ID, &r.ApplicantID, &r.AnimalID, &r.Status, &r.CreatedAt, &r.UpdatedAt, &ca)
	r.ClosedAt = timePtr(ca)
	return r, err
}

// Create: adoption_requests_active_uq rechaza un segundo pedido activo.
func (r requestRepo) Create(ctx context.Context, req requests.Request) error {
	_, err := repos(r).exec(ctx, psql.Insert("adoption_requests").
		Columns(requestColumns...).
		Values(req.ID, req.ApplicantID, req.AnimalID, req.Status, req.CreatedAt, req.UpdatedAt, nullTime(req.ClosedAt)))
	return err
}

func (r requestRepo) Update(ctx context.Context, req requests.Request) error {
	n, err := repos(r).exec(ctx, psql.Update("adoption_requests").
		Set("status", req.Status).
		Set("updated_at", req.UpdatedAt).
		Set("closed_at", nullTime(req.ClosedAt)).
		Where(sq.Eq{"id": req.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("adoption request")
	}
	return nil
}

func (r requestRepo) GetByID(ctx context.Context, id string) (requests.Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return requests.Request{}, apperr.NotFound("adoption request")
	}

	b := repos(r).forUpdate(psql.Select(requestColumns...).From("adoption_requests").Where(sq.Eq{"id": id}))
	row, err := repos(r).queryRow(ctx, b)
	if err != nil {
		return requests.Request{}, err
	}
	out, err := scanRequest(row)
	if err != nil {
		return requests.Request{}, notFound(err, "adoption request")
	}
	return out, nil
}

func (r requestRepo) ListByApplicant(ctx context.Context, applicantID string) ([]requests.Request, error) {
	rows, err := repos(r).query(ctx, psql.Select(requestColumns...).
		From("adoption_requests").
		Where(sq.Eq{"applicant_id": applicantID}).
		OrderBy("created_at DESC", "id DESC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]requests.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, req)
	}
	return out, mapErr(rows.Err())
}
