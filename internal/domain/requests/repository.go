package requests

import "context"

type Repository interface {
	// Create falla con ConflictError si el postulante ya tiene un pedido activo.
	Create(ctx context.Context, r Request) error
	Update(ctx context.Context, r Request) error
	GetByID(ctx context.Context, id string) (Request, error)

	// ListByApplicant devuelve los pedidos del más nuevo al más viejo.
	ListByApplicant(ctx context.Context, applicantID string) ([]Request, error)
}

// Current es el pedido más nuevo que no fue cancelado (o nil).
func Current(items []Request) *Request {
	for i := range items {
		if items[i].Status != StatusCancelled {
			return &items[i]
		}
	}
	return nil
}

// Active devuelve el pedido pending/in_progress si existe.
func Active(items []Request) *Request {
	for i := range items {
		if items[i].Status.IsActive() {
			return &items[i]
		}
	}
	return nil
}
