package documents

import (
	"strings"
	"time"
)

// Type es el tipo de documento que presenta el postulante.
// @Enum identification, proof_of_address, national_id
type Type string

const (
	TypeIdentification Type = "identification"
	TypeProofOfAddress Type = "proof_of_address"
	TypeNationalID     Type = "national_id"
)

// AllTypes es el set fijo de tipos aceptados.
var AllTypes = []Type{TypeIdentification, TypeProofOfAddress, TypeNationalID}

func ParseType(s string) (Type, bool) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllTypes {
		if t == known {
			return t, true
		}
	}
	return "", false
}

// ParseTypes convierte una lista de config; falla con el primer tipo desconocido.
func ParseTypes(raw []string) ([]Type, bool) {
	out := make([]Type, 0, len(raw))
	for _, s := range raw {
		t, ok := ParseType(s)
		if !ok {
			return nil, false
		}
		out = append(out, t)
	}
	return out, true
}

// Status es el estado de revisión de un documento.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Document es un archivo presentado por el postulante. Hay a lo sumo uno por (postulante, tipo).
type Document struct {
	ID          string
	ApplicantID string

	Type   Type
	Status Status

	// RejectionReason es obligatorio sii Status == rejected.
	RejectionReason string

	FileKey     string
	FileName    string
	ContentType string
	Size        int64

	ReviewedBy string
	ReviewedAt *time.Time

	UploadedAt time.Time
	UpdatedAt  time.Time
}
