package appointments

import "context"

type Repository interface {
	// Create y Update fallan con SlotConflictError si otra visita no cancelada ocupa (Date, Time).
	Create(ctx context.Context, a Appointment) error
	Update(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)

	// Listados de la más nueva a la más vieja.
	ListByRequest(ctx context.Context, requestID string) ([]Appointment, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Appointment, error)

	// ListByDate devuelve las visitas no canceladas del día.
	ListByDate(ctx context.Context, date string) ([]Appointment, error)
}
