package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/platform/apperr"

	sq "github.com/Masterminds/squirrel"
)

type documentRepo repos

var documentColumns = []string{
	"id", "applicant_id", "doc_type", "status", "rejection_reason",
	"file_key", "file_name", "content_type", "size_bytes",
	"reviewed_by", "reviewed_at", "uploaded_at", "updated_at",
}

func scanDocument(s scanner) (documents.Document, error) {
	var (
		d  documents.Document
		ra sql.NullTime
	)
	err := s.Scan(
		&d.ID,
		&d.ApplicantID,
		&d.Type,
		&d.Status,
		&d.RejectionReason,
		&d.FileKey,
		&d.FileName,
		&d.ContentType,
		&d.Size,
		&d.ReviewedBy,
		&ra,
		&d.UploadedAt,
		&d.UpdatedAt,
	)
	d.ReviewedAt = timePtr(ra)
	return d, err
}

func (r documentRepo) Create(ctx context.Context, d documents.Document) error {
	_, err := repos(r).exec(ctx, psql.Insert("documents").
		Columns(documentColumns...).
		Values(
			d.ID, d.ApplicantID, d.Type, d.Status, d.RejectionReason,
			d.FileKey, d.FileName, d.ContentType, d.Size,
			d.ReviewedBy, nullTime(d.ReviewedAt), d.UploadedAt, d.UpdatedAt,
		))
	return err
}

func (r documentRepo) Update(ctx context.Context, d documents.Document) error {
	n, err := repos(r).exec(ctx, psql.Update("documents").
		SetMap(map[string]any{
			"status":           d.Status,
			"rejection_reason": d.RejectionReason,
			"file_key":         d.FileKey,
			"file_name":        d.FileName,
			"content_type":     d.ContentType,
			"size_bytes":       d.Size,
			"reviewed_by":      d.ReviewedBy,
			"reviewed_at":      nullTime(d.ReviewedAt),
			"uploaded_at":      d.UploadedAt,
			"updated_at":       d.UpdatedAt,
		}).
		Where(sq.Eq{"id": d.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("document")
	}
	return nil
}

func (r documentRepo) GetByID(ctx context.Context, id string) (documents.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return documents.Document{}, apperr.NotFound("document")
	}
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r documentRepo) GetByApplicantType(ctx context.Context, applicantID string, t documents.Type) (documents.Document, error) {
	return r.getOne(ctx, sq.Eq{"applicant_id": applicantID, "doc_type": t})
}

func (r documentRepo) getOne(ctx context.Context, where sq.Eq) (documents.Document, error) {
	b := repos(r).forUpdate(psql.Select(documentColumns...).From("documents").Where(where))
	row, err := repos(r).queryRow(ctx, b)
	if err != nil {
		return documents.Document{}, err
	}
	d, err := scanDocument(row)
	if err != nil {
		return documents.Document{}, notFound(err, "document")
	}
	return d, nil
}

func (r documentRepo) ListByApplicant(ctx context.Context, applicantID string) ([]documents.Document, error) {
	rows, err := repos(r).query(ctx, psql.Select(documentColumns...).
		From("documents").
		Where(sq.Eq{"applicant_id": applicantID}).
		OrderBy("doc_type ASC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]documents.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, d)
	}
	return out, mapErr(rows.Err())
}

// applicantLock toma un advisory lock de la tx por postulante. Cubre también
// los documentos que todavía no existen (primer upload de un tipo).
func applicantLock(applicantID string) sq.SelectBuilder {
	return psql.Select().Column(sq.Expr("pg_advisory_xact_lock(hashtext(?))", "documents:"+applicantID))
}

func (r documentRepo) LockApplicant(ctx context.Context, applicantID string) error {
	if !r.lock {
		return nil
	}
	_, err := repos(r).exec(ctx, applicantLock(applicantID))
	return err
}
