package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/platform/apperr"

	sq "github.com/Masterminds/squirrel"
)

type adoptionRepo repos

var adoptionColumns = []string{
	"id", "request_id", "applicant_id", "animal_id", "status",
	"applicant_notes", "decision_notes", "reviewed_by", "contract_ref", "certificate_key",
	"follow_up_date", "reviewed_at", "created_at", "updated_at",
}

func scanAdoption(s scanner) (adoptions.Adoption, error) {
	var (
		a      adoptions.Adoption
		follow sql.NullTime
		ra     sql.NullTime
	)
	err := s.Scan(
		&a.ID,
		&a.RequestID,
		&a.ApplicantID,
		&a.AnimalID,
		&a.Status,
		&a.ApplicantNotes,
		&a.DecisionNotes,
		&a.ReviewedBy,
		&a.ContractRef,
		&a.CertificateKey,
		&follow,
		&ra,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	a.FollowUpDate = timePtr(follow)
	a.ReviewedAt = timePtr(ra)
	return a, err
}

func (r adoptionRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	_, err := repos(r).exec(ctx, psql.Insert("adoptions").
		Columns(adoptionColumns...).
		Values(
			a.ID, a.RequestID, a.ApplicantID, a.AnimalID, a.Status,
			a.ApplicantNotes, a.DecisionNotes, a.ReviewedBy, a.ContractRef, a.CertificateKey,
			nullTime(a.FollowUpDate), nullTime(a.ReviewedAt), a.CreatedAt, a.UpdatedAt,
		))
	return err
}

func (r adoptionRepo) Update(ctx context.Context, a adoptions.Adoption) error {
	n, err := repos(r).exec(ctx, psql.Update("adoptions").
		SetMap(map[string]any{
			"status":          a.Status,
			"applicant_notes": a.ApplicantNotes,
			"decision_notes":  a.DecisionNotes,
			"reviewed_by":     a.ReviewedBy,
			"contract_ref":    a.ContractRef,
			"certificate_key": a.CertificateKey,
			"follow_up_date":  nullTime(a.FollowUpDate),
			"reviewed_at":     nullTime(a.ReviewedAt),
			"updated_at":      a.UpdatedAt,
		}).
		Where(sq.Eq{"id": a.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("adoption")
	}
	return nil
}

func (r adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.Adoption{}, apperr.NotFound("adoption")
	}
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r adoptionRepo) GetByRequest(ctx context.Context, requestID string) (adoptions.Adoption, error) {
	return r.getOne(ctx, sq.Eq{"request_id": requestID})
}

func (r adoptionRepo) getOne(ctx context.Context, where sq.Eq) (adoptions.Adoption, error) {
	b := repos(r).forUpdate(psql.Select(adoptionColumns...).From("adoptions").Where(where))
	row, err := repos(r).queryRow(ctx, b)
	if err != nil {
		return adoptions.Adoption{}, err
	}
	a, err := scanAdoption(row)
	if err != nil {
		return adoptions.Adoption{}, notFound(err, "adoption")
	}
	return a, nil
}
