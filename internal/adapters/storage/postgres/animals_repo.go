package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/platform/apperr"

	sq "github.com/Masterminds/squirrel"
)

type animalRepo repos

var animalColumns = []string{
	"id", "name", "species", "breed", "sex", "size",
	"birth_date", "description", "photo_url", "state",
	"created_at", "updated_at",
}

func scanAnimal(s scanner) (animals.Animal, error) {
	var (
		a  animals.Animal
		bd sql.NullTime
	)
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Species,
		&a.Breed,
		&a.Sex,
		&a.Size,
		&bd,
		&a.Description,
		&a.PhotoURL,
		&a.State,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	// birth_date es DATE: pgx lo devuelve como medianoche UTC
	a.BirthDate = timePtr(bd)
	return a, err
}

func (r animalRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := repos(r).exec(ctx, psql.Insert("animals").
		Columns(animalColumns...).
		Values(
			a.ID, a.Name, a.Species, a.Breed, a.Sex, a.Size,
			nullTime(a.BirthDate), a.Description, a.PhotoURL, a.State,
			a.CreatedAt, a.UpdatedAt,
		))
	return err
}

func (r animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, apperr.NotFound("animal")
	}

	b := repos(r).forUpdate(psql.Select(animalColumns...).From("animals").Where(sq.Eq{"id": id}))
	row, err := repos(r).queryRow(ctx, b)
	if err != nil {
		return animals.Animal{}, err
	}
	a, err := scanAnimal(row)
	if err != nil {
		return animals.Animal{}, notFound(err, "animal")
	}
	return a, nil
}

func (r animalRepo) List(ctx context.Context, f animals.ListFilter) ([]animals.Animal, error) {
	b := psql.Select(animalColumns...).From("animals").OrderBy("created_at ASC", "id ASC")
	if f.State != "" {
		b = b.Where(sq.Eq{"state": f.State})
	}
	if f.Species != "" {
		b = b.Where(sq.Eq{"species": f.Species})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	rows, err := repos(r).query(ctx, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, mapErr(err)
		}
		out = append(out, a)
	}
	return out, mapErr(rows.Err())
}

// TransitionState: el WHERE state = from hace el compare-and-set en una sola sentencia.
func (r animalRepo) TransitionState(ctx context.Context, id string, from, to animals.State, at time.Time) (animals.Animal, error) {
	b := psql.Update("animals").
		Set("state", to).
		Set("updated_at", at).
		Where(sq.Eq{"id": id, "state": from}).
		Suffix("RETURNING " + strings.Join(animalColumns, ", "))

	row, err := repos(r).queryRow(ctx, b)
	if err != nil {
		return animals.Animal{}, err
	}
	a, err := scanAnimal(row)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return animals.Animal{}, mapErr(err)
	}

	// no hubo update: o no existe o el estado no era from
	current, gerr := r.GetByID(ctx, id)
	if gerr != nil {
		return animals.Animal{}, gerr
	}
	return animals.Animal{}, apperr.Conflict("animal is " + string(current.State) + ", expected " + string(from))
}
