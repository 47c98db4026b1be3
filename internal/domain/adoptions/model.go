package adoptions

import (
	"strings"
	"time"
)

// Status de la revisión final.
// @Enum pending, approved, rejected
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseDecision acepta sólo decisiones terminales.
func ParseDecision(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusApproved:
		return StatusApproved, true
	case StatusRejected:
		return StatusRejected, true
	default:
		return "", false
	}
}

// Adoption es la revisión final de un pedido (1:1 con el pedido).
type Adoption struct {
	ID          string
	RequestID   string
	ApplicantID string
	AnimalID    string

	Status Status

	ApplicantNotes string
	DecisionNotes  string

	ReviewedBy     string
	ContractRef    string
	CertificateKey string
	FollowUpDate   *time.Time

	ReviewedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
