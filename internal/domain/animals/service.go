package animals

import (
	"context"
	"strings"
	"time"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateInput struct {
	Name        string
	Species     string
	Breed       string
	Sex         string
	Size        string
	BirthDate   *time.Time
	Description string
	PhotoURL    string
}

// Create publica un animal nuevo (siempre available). Sólo administradores.
func (s *Service) Create(ctx context.Context, actor auth.Actor, in CreateInput) (Animal, error) {
	if !actor.Admin {
		return Animal{}, apperr.Authorization("only administrators can register animals")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Animal{}, apperr.Validation("name is required")
	}
	species, ok := ParseSpecies(in.Species)
	if !ok {
		return Animal{}, apperr.Validation("species must be dog, cat or other")
	}
	size, ok := normalizeSize(in.Size)
	if !ok {
		return Animal{}, apperr.Validation("size must be small, medium or large")
	}

	now := s.now()
	if in.BirthDate != nil && in.BirthDate.After(now) {
		return Animal{}, apperr.Validation("birth_date cannot be in the future")
	}

	a := Animal{
		ID:          uuid.NewString(),
		Name:        name,
		Species:     species,
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         normalizeSex(in.Sex),
		Size:        size,
		BirthDate:   in.BirthDate,
		Description: strings.TrimSpace(in.Description),
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		State:       StateAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	if strings.TrimSpace(id) == "" {
		return Animal{}, apperr.NotFound("animal")
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Animal, error) {
	return s.repo.List(ctx, f)
}
