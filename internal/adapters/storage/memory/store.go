package memory

import (
	"context"
	"sync"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/domain/requests"
	"pet-adoption/internal/ports/store"
)

// state es todo el contenido del store. Las entidades se guardan por valor,
// así que clone() alcanza con copiar los maps.
type state struct {
	animals      map[string]animals.Animal
	documents    map[string]documents.Document
	requests     map[string]requests.Request
	appointments map[string]appointments.Appointment
	adoptions    map[string]adoptions.Adoption

	// seq/order desempatan listados con el mismo created_at (reloj fijo en tests).
	seq   int64
	order map[string]int64
}

func newState() *state {
	return &state{
		animals:      map[string]animals.Animal{},
		documents:    map[string]documents.Document{},
		requests:     map[string]requests.Request{},
		appointments: map[string]appointments.Appointment{},
		adoptions:    map[string]adoptions.Adoption{},
		order:        map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := &state{
		animals:      make(map[string]animals.Animal, len(s.animals)),
		documents:    make(map[string]documents.Document, len(s.documents)),
		requests:     make(map[string]requests.Request, len(s.requests)),
		appointments: make(map[string]appointments.Appointment, len(s.appointments)),
		adoptions:    make(map[string]adoptions.Adoption, len(s.adoptions)),
		seq:          s.seq,
		order:        make(map[string]int64, len(s.order)),
	}
	for k, v := range s.animals {
		c.animals[k] = v
	}
	for k, v := range s.documents {
		c.documents[k] = v
	}
	for k, v := range s.requests {
		c.requests[k] = v
	}
	for k, v := range s.appointments {
		c.appointments[k] = v
	}
	for k, v := range s.adoptions {
		c.adoptions[k] = v
	}
	for k, v := range s.order {
		c.order[k] = v
	}
	return c
}

func (s *state) track(id string) {
	s.seq++
	s.order[id] = s.seq
}

// Store implementa store.Store en memoria (modo dev y tests).
// Un único mutex serializa todas las operaciones: los checks de unicidad
// y la escritura ocurren siempre bajo el mismo lock.
type Store struct {
	mu sync.Mutex
	st *state

	repos
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	s := &Store{st: newState()}
	s.repos = repos{with: s.locked}
	return s
}

func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// WithTx corre fn sobre una copia del estado y la publica sólo si fn no falla.
// fn no debe usar el Store directamente (el lock ya está tomado), sólo tx.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx store.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	draft := s.st.clone()
	tx := repos{with: func(f func(st *state) error) error { return f(draft) }}

	if err := fn(ctx, tx); err != nil {
		return err
	}
	s.st = draft
	return nil
}

// repos resuelve cada repositorio contra el acceso recibido (con lock o dentro de tx).
type repos struct {
	with func(fn func(st *state) error) error
}

func (r repos) Animals() animals.Repository           { return animalRepo(r) }
func (r repos) Documents() documents.Repository       { return documentRepo(r) }
func (r repos) Requests() requests.Repository         { return requestRepo(r) }
func (r repos) Appointments() appointments.Repository { return appointmentRepo(r) }
func (r repos) Adoptions() adoptions.Repository       { return adoptionRepo(r) }
