package lifecycle

import (
	"context"
	"strings"

	"pet-adoption/internal/domain/documents"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/ports/notify"
	"pet-adoption/internal/ports/store"

	"github.com/google/uuid"
)

// DocumentService es el agregador documental: carga, revisión y estado derivado.
type DocumentService struct {
	*base
	maxBytes int64
}

func (s *DocumentService) List(ctx context.Context, actor auth.Actor, applicantID string) ([]documents.Document, error) {
	if err := requireSelfOrAdmin(actor, applicantID); err != nil {
		return nil, err
	}
	return s.store.Documents().ListByApplicant(ctx, applicantID)
}

// AggregateStatus se recalcula en cada llamada; no hay cache.
func (s *DocumentService) AggregateStatus(ctx context.Context, applicantID string) (documents.AggregateStatus, error) {
	return s.aggregate(ctx, s.store, applicantID)
}

// Status es AggregateStatus con control de acceso (para handlers).
func (s *DocumentService) Status(ctx context.Context, actor auth.Actor, applicantID string) (documents.AggregateStatus, error) {
	if err := requireSelfOrAdmin(actor, applicantID); err != nil {
		return "", err
	}
	return s.AggregateStatus(ctx, applicantID)
}

type UploadInput struct {
	Type        string
	FileName    string
	ContentType string
	Data        []byte
}

// Upload guarda el archivo y deja el documento del tipo en pending.
// Re-subir un tipo pendiente o rechazado reemplaza el archivo; uno aprobado no se puede reemplazar.
func (s *DocumentService) Upload(ctx context.Context, actor auth.Actor, in UploadInput) (documents.Document, error) {
	if err := requireActor(actor); err != nil {
		return documents.Document{}, err
	}
	t, ok := documents.ParseType(in.Type)
	if !ok {
		return documents.Document{}, apperr.Validation("type must be identification, proof_of_address or national_id")
	}
	contentType := documents.DetectContentType(in.ContentType, in.Data)
	if err := documents.ValidateFile(contentType, in.Data, s.maxBytes); err != nil {
		return documents.Document{}, err
	}
	if s.files == nil {
		return documents.Document{}, apperr.Dependency("file storage not configured", nil)
	}

	// Chequeo barato antes de subir el archivo; se repite dentro de la tx.
	if current, err := s.store.Documents().GetByApplicantType(ctx, actor.ID, t); err == nil {
		if current.Status == documents.StatusApproved {
			return documents.Document{}, apperr.Conflict("document already approved")
		}
	} else if !apperr.IsNotFound(err) {
		return documents.Document{}, err
	}

	fileName := strings.TrimSpace(in.FileName)
	key := documents.ObjectKey(actor.ID, t, uuid.NewString(), contentType, fileName)
	if err := s.files.Put(ctx, key, contentType, in.Data); err != nil {
		return documents.Document{}, apperr.Dependency("could not store document file", err)
	}

	now := s.now()
	var out documents.Document
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		repo := tx.Documents()
		if err := repo.LockApplicant(ctx, actor.ID); err != nil {
			return err
		}

		current, err := repo.GetByApplicantType(ctx, actor.ID, t)
		switch {
		case apperr.IsNotFound(err):
			out = documents.Document{
				ID:          uuid.NewString(),
				ApplicantID: actor.ID,
				Type:        t,
				Status:      documents.StatusPending,
				FileKey:     key,
				FileName:    fileName,
				ContentType: contentType,
				Size:        int64(len(in.Data)),
				UploadedAt:  now,
				UpdatedAt:   now,
			}
			return repo.Create(ctx, out)
		case err != nil:
			return err
		}

		if current.Status == documents.StatusApproved {
			return apperr.Conflict("document already approved")
		}
		current.Status = documents.StatusPending
		current.RejectionReason = ""
		current.ReviewedBy = ""
		current.ReviewedAt = nil
		current.FileKey = key
		current.FileName = fileName
		current.ContentType = contentType
		current.Size = int64(len(in.Data))
		current.UploadedAt = now
		current.UpdatedAt = now
		out = current
		return repo.Update(ctx, current)
	})
	if err != nil {
		return documents.Document{}, err
	}

	s.log.Info("document uploaded", map[string]any{
		"applicant_id": out.ApplicantID,
		"document_id":  out.ID,
		"type":         string(out.Type),
	})
	return out, nil
}

// Review aplica la decisión de un administrador: approved o rejected (con motivo).
func (s *DocumentService) Review(ctx context.Context, actor auth.Actor, documentID, decision, reason string) (documents.Document, error) {
	switch documents.Status(strings.ToLower(strings.TrimSpace(decision))) {
	case documents.StatusApproved:
		return s.Approve(ctx, actor, documentID)
	case documents.StatusRejected:
		return s.Reject(ctx, actor, documentID, reason)
	default:
		if err := requireAdmin(actor); err != nil {
			return documents.Document{}, err
		}
		return documents.Document{}, apperr.Validation("decision must be approved or rejected")
	}
}

func (s *DocumentService) Approve(ctx context.Context, actor auth.Actor, documentID string) (documents.Document, error) {
	if err := requireAdmin(actor); err != nil {
		return documents.Document{}, err
	}

	var (
		out           documents.Document
		before, after documents.AggregateStatus
	)
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		d, err := tx.Documents().GetByID(ctx, documentID)
		if err != nil {
			return err
		}
		// Dos aprobaciones concurrentes del mismo postulante tienen que ver una el cambio de la otra.
		if err := tx.Documents().LockApplicant(ctx, d.ApplicantID); err != nil {
			return err
		}
		if before, err = s.aggregate(ctx, tx, d.ApplicantID); err != nil {
			return err
		}

		now := s.now()
		d.Status = documents.StatusApproved
		d.RejectionReason = ""
		d.ReviewedBy = actor.ID
		d.ReviewedAt = &now
		d.UpdatedAt = now
		if err := tx.Documents().Update(ctx, d); err != nil {
			return err
		}

		out = d
		after, err = s.aggregate(ctx, tx, d.ApplicantID)
		return err
	})
	if err != nil {
		return documents.Document{}, err
	}

	// Sólo se avisa cuando el set completo queda aprobado.
	if after == documents.AggregateApproved && before != documents.AggregateApproved {
		s.dispatch(ctx, notify.EventDocumentsApproved, out.ApplicantID, map[string]string{
			"documents_status": string(after),
		})
	}
	return out, nil
}

func (s *DocumentService) Reject(ctx context.Context, actor auth.Actor, documentID, reason string) (documents.Document, error) {
	if err := requireAdmin(actor); err != nil {
		return documents.Document{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return documents.Document{}, apperr.Validation("rejection reason is required")
	}

	var out documents.Document
	err := s.store.WithTx(ctx, func(ctx context.Context, tx store.Repos) error {
		d, err := tx.Documents().GetByID(ctx, documentID)
		if err != nil {
			return err
		}
		if err := tx.Documents().LockApplicant(ctx, d.ApplicantID); err != nil {
			return err
		}

		now := s.now()
		d.Status = documents.StatusRejected
		d.RejectionReason = reason
		d.ReviewedBy = actor.ID
		d.ReviewedAt = &now
		d.UpdatedAt = now
		out = d
		return tx.Documents().Update(ctx, d)
	})
	if err != nil {
		return documents.Document{}, err
	}

	s.dispatch(ctx, notify.EventDocumentRejected, out.ApplicantID, map[string]string{
		"document_id": out.ID,
		"type":        string(out.Type),
		"reason":      reason,
	})
	return out, nil
}

// DownloadURL devuelve el link del archivo (dueño o admin).
func (s *DocumentService) DownloadURL(ctx context.Context, actor auth.Actor, documentID string) (string, error) {
	d, err := s.store.Documents().GetByID(ctx, documentID)
	if err != nil {
		return "", err
	}
	if err := requireSelfOrAdmin(actor, d.ApplicantID); err != nil {
		return "", err
	}
	if s.files == nil {
		return "", apperr.Dependency("file storage not configured", nil)
	}
	u, err := s.files.URL(ctx, d.FileKey)
	if err != nil {
		return "", apperr.Dependency("could not build download url", err)
	}
	return u, nil
}
