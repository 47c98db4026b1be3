package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/platform/apperr"

	sq "github.com/Masterminds/squirrel"
)

type appointmentRepo repos

var appointmentColumns = []string{
	"id", "request_id", "applicant_id", "animal_id",
	"slot_date", "slot_time", "status",
	"attendance", "interaction", "note",
	"evaluated_by", "evaluated_at", "created_at", "updated_at",
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var (
		a  appointments.Appointment
		ea sql.NullTime
	)
	err := s.Scan(
		&a.ID,
		&a.RequestID,
		&a.ApplicantID,
		&a.AnimalID,
		&a.Date,
		&a.Time,
		&a.Status,
		&a.Attendance,
		&a.Interaction,
		&a.Note,
		&a.EvaluatedBy,
		&ea,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	a.EvaluatedAt = timePtr(ea)
	return a, err
}

// Create: appointments_active_slot_uq => SlotConflictError (ver mapErr).
func (r appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := repos(r).exec(ctx, psql.Insert("appointments").
		Columns(appointmentColumns...).
		Values(
			a.ID, a.RequestID, a.ApplicantID, a.AnimalID,
			a.Date, a.Time, a.Status,
			a.Attendance, a.Interaction, a.Note,
			a.EvaluatedBy, nullTime(a.EvaluatedAt), a.CreatedAt, a.UpdatedAt,
		))
	return err
}

func (r appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	n, err := repos(r).exec(ctx, psql.Update("appointments").
		SetMap(map[string]any{
			"slot_date":    a.Date,
			"slot_time":    a.Time,
			"status":       a.Status,
			"attendance":   a.Attendance,
			"interaction":  a.Interaction,
			"note":         a.Note,
			"evaluated_by": a.EvaluatedBy,
			"evaluated_at": nullTime(a.EvaluatedAt),
			"updated_at":   a.UpdatedAt,
		}).
		Where(sq.Eq{"id": a.ID}))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("appointment")
	}
	return nil
}

func (r appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, apperr.NotFound("appointment")
	}

	b := repos(r).forUpdate(psql.Select(appointmentColumns...).From("appointments").Where(sq.Eq{"id": id}))
	row, err := repos(r).queryRow(ctx, b)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a, err := scanAppointment(row)
	if err != nil {
		return appointments.Appointment{}, notFound(err, "appointment")
	}
	return a, nil
}

func (r appointmentRepo) ListByRequest(ctx context.Context, requestID string) ([]appointments.Appointment, error) {
	return r.list(ctx, sq.Eq{"request_id": requestID})
}

func (r appointmentRepo) ListByApplicant(ctx context.Context, applicantID string) ([]appointments.Appointment, error) {
	return r.list(ctx, sq.Eq{"applicant_id": applicantID})
}

func (r appointmentRepo) ListByDate(ctx context.Context, date string) ([]appointments.Appointment, error) {
	return r.list(ctx, sq.And{
		sq.Eq{"slot_date": date},
		sq.NotEq{"status": appointments.StatusCancelled},
	})
}

func (r appointmentRepo) list(ctx context.Context, where sq.Sqlizer) ([]appointments.Appointment, error) {
	rows, err := repos(r).query(ctx, psql.Select(appointmentColumns...).
		From("appointments").
		Where(where).
		OrderBy("created_at DESC", "id DESC"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, a)
	}
	return out, mapErr(rows.Err())
}
