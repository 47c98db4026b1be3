package documents

import "context"

type Repository interface {
	// Create falla con ConflictError si ya existe un documento del mismo tipo para el postulante.
	Create(ctx context.Context, d Document) error
	Update(ctx context.Context, d Document) error
	GetByID(ctx context.Context, id string) (Document, error)
	GetByApplicantType(ctx context.Context, applicantID string, t Type) (Document, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]Document, error)
	// LockApplicant serializa, dentro de una tx, los cambios sobre los documentos
	// de un postulante hasta el commit. Fuera de una tx no hace nada.
	LockApplicant(ctx context.Context, applicantID string) error
}
