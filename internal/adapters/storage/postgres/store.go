package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/store"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// nombres de constraints de schema.sql que se traducen a errores de dominio
const (
	constraintActiveRequest = "adoption_requests_active_uq"
	constraintActiveSlot    = "appointments_active_slot_uq"
	constraintDocumentType  = "documents_applicant_type_uq"
	constraintAdoptionReq   = "adoptions_request_uq"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Store implementa store.Store sobre Postgres.
type Store struct {
	db *sql.DB
	repos
}

var _ store.Store = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repos: repos{q: db}}
}

// WithTx corre fn en una transacción READ COMMITTED.
// Dentro de la tx las lecturas por id toman FOR UPDATE sobre la fila.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx store.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return apperr.Dependency("database error", fmt.Errorf("begin tx: %w", err))
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(ctx, repos{q: tx, lock: true}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapErr(err)
	}
	return nil
}

type repos struct {
	q    querier
	lock bool
}

func (r repos) Animals() animals.Repository           { return animalRepo(r) }
func (r repos) Documents() documents.Repository       { return documentRepo(r) }
func (r repos) Requests() requests.Repository         { return requestRepo(r) }
func (r repos) Appointments() appointments.Repository { return appointmentRepo(r) }
func (r repos) Adoptions() adoptions.Repository       { return adoptionRepo(r) }

// forUpdate agrega FOR UPDATE sólo dentro de una transacción.
func (r repos) forUpdate(b sq.SelectBuilder) sq.SelectBuilder {
	if r.lock {
		return b.Suffix("FOR UPDATE")
	}
	return b
}

func (r repos) exec(ctx context.Context, b sq.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, mapErr(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r repos) queryRow(ctx context.Context, b sq.Sqlizer) (*sql.Row, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	return r.q.QueryRowContext(ctx, query, args...), nil
}

func (r repos) query(ctx context.Context, b sq.Sqlizer) (*sql.Rows, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	return rows, nil
}

// mapErr traduce violaciones de constraints a errores de dominio.
// Lo que no es una violación conocida (driver, conexión, timeout) queda como Dependency.
func mapErr(err error) error {
	if err == nil || apperr.KindOf(err) != "" {
		return err
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperr.Dependency("database error", err)
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		switch pgErr.ConstraintName {
		case constraintActiveSlot:
			return apperr.SlotConflict("slot is already taken")
		case constraintActiveRequest:
			return apperr.Conflict("applicant already has an active adoption request")
		case constraintDocumentType:
			return apperr.Conflict("document of this type already exists")
		case constraintAdoptionReq:
			return apperr.Conflict("adoption already exists for this request")
		default:
			return apperr.Conflict("duplicate record")
		}
	case "23503": // foreign_key_violation
		return apperr.Validation("referenced record does not exist")
	case "23514": // check_violation
		return apperr.Validationf("invalid value (%s)", pgErr.ConstraintName)
	}
	return apperr.Dependency("database error", err)
}

// notFound mapea sql.ErrNoRows al NotFound de la entidad.
func notFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound(entity)
	}
	return mapErr(err)
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
