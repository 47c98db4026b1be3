package lifecycle

import (
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/animals"
	"pet-adoption/internal/domain/appointments"
	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/domain/requests"
)

type requestResponse struct {
	ID          string          `json:"id"`
	ApplicantID string          `json:"applicant_id"`
	AnimalID    string          `json:"animal_id"`
	Status      requests.Status `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	ClosedAt    *time.Time      `json:"closed_at,omitempty"`
}

func toRequestResponse(r requests.Request) requestResponse {
	return requestResponse{
		ID:          r.ID,
		ApplicantID: r.ApplicantID,
		AnimalID:    r.AnimalID,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		ClosedAt:    r.ClosedAt,
	}
}

type appointmentResponse struct {
	ID          string                   `json:"id"`
	RequestID   string                   `json:"request_id"`
	ApplicantID string                   `json:"applicant_id"`
	AnimalID    string                   `json:"animal_id"`
	Date        string                   `json:"date"`
	Time        string                   `json:"time"`
	Status      appointments.Status      `json:"status"`
	Attendance  appointments.Attendance  `json:"attendance,omitempty"`
	Interaction appointments.Interaction `json:"interaction,omitempty"`
	Note        string                   `json:"note,omitempty"`
	EvaluatedBy string                   `json:"evaluated_by,omitempty"`
	EvaluatedAt *time.Time               `json:"evaluated_at,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func toAppointmentResponse(a appointments.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		RequestID:   a.RequestID,
		ApplicantID: a.ApplicantID,
		AnimalID:    a.AnimalID,
		Date:        a.Date,
		Time:        a.Time,
		Status:      a.Status,
		Attendance:  a.Attendance,
		Interaction: a.Interaction,
		Note:        a.Note,
		EvaluatedBy: a.EvaluatedBy,
		EvaluatedAt: a.EvaluatedAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type documentResponse struct {
	ID              string           `json:"id"`
	ApplicantID     string           `json:"applicant_id"`
	Type            documents.Type   `json:"type"`
	Status          documents.Status `json:"status"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	FileName        string           `json:"file_name"`
	ContentType     string           `json:"content_type"`
	Size            int64            `json:"size"`
	ReviewedBy      string           `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	UploadedAt      time.Time        `json:"uploaded_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func toDocumentResponse(d documents.Document) documentResponse {
	return documentResponse{
		ID:              d.ID,
		ApplicantID:     d.ApplicantID,
		Type:            d.Type,
		Status:          d.Status,
		RejectionReason: d.RejectionReason,
		FileName:        d.FileName,
		ContentType:     d.ContentType,
		Size:            d.Size,
		ReviewedBy:      d.ReviewedBy,
		ReviewedAt:      d.ReviewedAt,
		UploadedAt:      d.UploadedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type adoptionResponse struct {
	ID             string           `json:"id"`
	RequestID      string           `json:"request_id"`
	ApplicantID    string           `json:"applicant_id"`
	AnimalID       string           `json:"animal_id"`
	Status         adoptions.Status `json:"status"`
	ApplicantNotes string           `json:"applicant_notes,omitempty"`
	DecisionNotes  string           `json:"decision_notes,omitempty"`
	ReviewedBy     string           `json:"reviewed_by,omitempty"`
	ContractRef    string           `json:"contract_ref,omitempty"`
	CertificateKey string           `json:"certificate_key,omitempty"`
	FollowUpDate   *time.Time       `json:"follow_up_date,omitempty"`
	ReviewedAt     *time.Time       `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func toAdoptionResponse(a adoptions.Adoption) adoptionResponse {
	return adoptionResponse{
		ID:             a.ID,
		RequestID:      a.RequestID,
		ApplicantID:    a.ApplicantID,
		AnimalID:       a.AnimalID,
		Status:         a.Status,
		ApplicantNotes: a.ApplicantNotes,
		DecisionNotes:  a.DecisionNotes,
		ReviewedBy:     a.ReviewedBy,
		ContractRef:    a.ContractRef,
		CertificateKey: a.CertificateKey,
		FollowUpDate:   a.FollowUpDate,
		ReviewedAt:     a.ReviewedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

type phaseResponse struct {
	ApplicantID     string                    `json:"applicant_id"`
	Phase           Phase                     `json:"phase"`
	Step            int                       `json:"step"`
	NextAction      NextAction                `json:"next_action"`
	DocumentsStatus documents.AggregateStatus `json:"documents_status"`

	Request     *requestResponse        `json:"request,omitempty"`
	Animal      *animals.AnimalResponse `json:"animal,omitempty"`
	Appointment *appointmentResponse    `json:"appointment,omitempty"`
	Adoption    *adoptionResponse       `json:"adoption,omitempty"`
}

func toPhaseResponse(p ApplicantPhase) phaseResponse {
	out := phaseResponse{
		ApplicantID:     p.ApplicantID,
		Phase:           p.Phase,
		Step:            p.Step,
		NextAction:      p.NextAction,
		DocumentsStatus: p.DocumentsStatus,
	}
	if p.Request != nil {
		v := toRequestResponse(*p.Request)
		out.Request = &v
	}
	if p.Animal != nil {
		v := animals.ToResponse(*p.Animal)
		out.Animal = &v
	}
	if p.Appointment != nil {
		v := toAppointmentResponse(*p.Appointment)
		out.Appointment = &v
	}
	if p.Adoption != nil {
		v := toAdoptionResponse(*p.Adoption)
		out.Adoption = &v
	}
	return out
}
