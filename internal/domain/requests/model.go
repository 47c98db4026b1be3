package requests

import "time"

// Status del pedido de adopción.
// @Enum pending, in_progress, cancelled, completed, rejected
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCancelled  Status = "cancelled"

	// Terminales explícitos: la decisión final no se infiere por existencia de la adopción.
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

// IsActive: a lo sumo un pedido activo por postulante.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusInProgress
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusRejected
}

// Request es el pedido de un postulante por un animal concreto.
type Request struct {
	ID          string
	ApplicantID string
	AnimalID    string

	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
}
