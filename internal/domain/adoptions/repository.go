package adoptions

import "context"

type Repository interface {
	// Create falla con ConflictError si ya existe una adopción para el pedido.
	Create(ctx context.Context, a Adoption) error
	Update(ctx context.Context, a Adoption) error
	GetByID(ctx context.Context, id string) (Adoption, error)
	GetByRequest(ctx context.Context, requestID string) (Adoption, error)
}
