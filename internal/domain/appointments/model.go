package appointments

import (
	"strings"
	"time"
)

// Status de la visita.
// @Enum scheduled, completed, cancelled
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Attendance se carga al evaluar. Vacío = sin evaluar.
type Attendance string

const (
	AttendanceAttended Attendance = "attended"
	AttendanceNoShow   Attendance = "no_show"
)

// Interaction describe cómo fue el encuentro con el animal. Vacío si no asistió.
type Interaction string

const (
	InteractionApproved Interaction = "approved"
	InteractionUnfit    Interaction = "unfit"
)

func ParseAttendance(s string) (Attendance, bool) {
	switch Attendance(strings.ToLower(strings.TrimSpace(s))) {
	case AttendanceAttended:
		return AttendanceAttended, true
	case AttendanceNoShow, "no-show":
		return AttendanceNoShow, true
	default:
		return "", false
	}
}

// ParseInteraction acepta vacío (sin interacción).
func ParseInteraction(s string) (Interaction, bool) {
	switch Interaction(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", true
	case InteractionApproved, "good":
		return InteractionApproved, true
	case InteractionUnfit:
		return InteractionUnfit, true
	default:
		return "", false
	}
}

// Appointment es una visita del postulante al refugio para conocer al animal.
// (Date, Time) identifica el slot; no puede haber dos visitas no canceladas en el mismo slot.
type Appointment struct {
	ID          string
	RequestID   string
	ApplicantID string
	AnimalID    string

	Date string // YYYY-MM-DD
	Time string // HH:MM

	Status      Status
	Attendance  Attendance
	Interaction Interaction
	Note        string

	EvaluatedBy string
	EvaluatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Approved: única condición que habilita el formulario final.
func (a Appointment) Approved() bool {
	return a.Status == StatusCompleted &&
		a.Attendance == AttendanceAttended &&
		a.Interaction == InteractionApproved
}

// EvaluatedNegative: evaluada como no asistió o no apto.
func (a Appointment) EvaluatedNegative() bool {
	return a.Status == StatusCompleted && !a.Approved()
}

// Latest devuelve la visita no cancelada más nueva de una lista ordenada de nueva a vieja.
func Latest(items []Appointment) *Appointment {
	for i := range items {
		if items[i].Status != StatusCancelled {
			return &items[i]
		}
	}
	return nil
}

// Scheduled devuelve la visita agendada (pendiente) si existe.
func Scheduled(items []Appointment) *Appointment {
	for i := range items {
		if items[i].Status == StatusScheduled {
			return &items[i]
		}
	}
	return nil
}
