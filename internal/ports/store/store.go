package store

import (
	"context"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/domain/requests"
)

// Repos agrupa los repositorios de todas las entidades del proceso.
type Repos interface {
	Animals() animals.Repository
	Documents() documents.Repository
	Requests() requests.Repository
	Appointments() appointments.Repository
	Adoptions() adoptions.Repository
}

// Store es la unidad de trabajo. Fuera de WithTx cada llamada es atómica por sí sola;
// dentro de WithTx todo lo que haga fn se confirma junto o no se confirma.
type Store interface {
	Repos
	WithTx(ctx context.Context, fn func(ctx context.Context, tx Repos) error) error
}
