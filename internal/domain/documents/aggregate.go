package documents

// AggregateStatus es el estado derivado del set de documentos de un postulante.
// Nunca se persiste: se recalcula en cada lectura.
type AggregateStatus string

const (
	AggregateEmpty      AggregateStatus = "sin_documentos"
	AggregateRejected   AggregateStatus = "rechazado"
	AggregateInReview   AggregateStatus = "en_revision"
	AggregateApproved   AggregateStatus = "aprobado"
	AggregateIncomplete AggregateStatus = "incompleto"
)

// Aggregate evalúa las reglas en orden: vacío, algún rechazado, algún pendiente,
// todos los requeridos aprobados. Si todo lo presentado está aprobado pero falta
// un tipo requerido el resultado es incompleto.
func Aggregate(docs []Document, required []Type) AggregateStatus {
	if len(docs) == 0 {
		return AggregateEmpty
	}

	approved := make(map[Type]bool, len(docs))
	pending := false
	for _, d := range docs {
		switch d.Status {
		case StatusRejected:
			return AggregateRejected
		case StatusPending:
			pending = true
		case StatusApproved:
			approved[d.Type] = true
		}
	}
	if pending {
		return AggregateInReview
	}

	for _, t := range required {
		if !approved[t] {
			return AggregateIncomplete
		}
	}
	return AggregateApproved
}
