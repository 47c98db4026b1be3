package lifecycle

import (
	"errors"
	"io"
	"net/http"

	"pet-adoption/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

// margen para los campos del form además del archivo
const multipartOverhead = 1 << 20

type reviewDocumentRequest struct {
	Decision string `json:"decision"` // approved | rejected
	Reason   string `json:"reason"`
}

type documentsStatusResponse struct {
	ApplicantID string `json:"applicant_id"`
	Status      string `json:"status"`
}

type downloadResponse struct {
	URL string `json:"url"`
}

// uploadDocumentHandler godoc
// @Summary Subir documento
// @Description Sube un documento del postulante autenticado (multipart: `type` y `file`). PDF, JPEG o PNG. Queda en `pending` hasta revisión.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param type formData string true "identification | proof_of_address | national_id"
// @Param file formData file true "Archivo"
// @Success 201 {object} documentResponse
// @Failure 400 {object} map[string]string "invalid multipart"
// @Failure 409 {object} map[string]string "documento ya aprobado"
// @Failure 413 {object} map[string]string "archivo demasiado grande"
// @Failure 422 {object} map[string]string "validation"
// @Failure 502 {object} map[string]string "storage"
// @Router /documents [post]
func uploadDocumentHandler(svc *DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, svc.maxBytes+multipartOverhead)
		if err := r.ParseMultipartForm(svc.maxBytes + multipartOverhead); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				apperr.WriteStatus(w, http.StatusRequestEntityTooLarge, "too_large", "file too large")
				return
			}
			apperr.WriteStatus(w, http.StatusBadRequest, "invalid_multipart", "invalid multipart form")
			return
		}

		f, hdr, err := r.FormFile("file")
		if err != nil {
			apperr.WriteHTTP(w, apperr.Validation("file is required"))
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			apperr.WriteStatus(w, http.StatusBadRequest, "invalid_multipart", "could not read file")
			return
		}

		out, err := svc.Upload(r.Context(), actor, UploadInput{
			Type:        r.FormValue("type"),
			FileName:    hdr.Filename,
			ContentType: hdr.Header.Get("Content-Type"),
			Data:        data,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDocumentResponse(out))
	}
}

// reviewDocumentHandler godoc
// @Summary Revisar documento
// @Description Aprueba o rechaza un documento. Solo administradores. El rechazo requiere motivo.
// @Tags documents
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, `admin`"
// @Param documentID path string true "ID del documento"
// @Param payload body reviewDocumentRequest true "Decisión"
// @Success 200 {object} documentResponse
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "document not found"
// @Failure 422 {object} map[string]string "validation"
// @Router /documents/{documentID}/review [post]
func reviewDocumentHandler(svc *DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		var req reviewDocumentRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		out, err := svc.Review(r.Context(), actor, chi.URLParam(r, "documentID"), req.Decision, req.Reason)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDocumentResponse(out))
	}
}

func documentDownloadHandler(svc *DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		u, err := svc.DownloadURL(r.Context(), actor, chi.URLParam(r, "documentID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, downloadResponse{URL: u})
	}
}

func listDocumentsHandler(svc *DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		items, err := svc.List(r.Context(), actor, chi.URLParam(r, "applicantID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		out := make([]documentResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDocumentResponse(d))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// documentsStatusHandler godoc
// @Summary Estado de documentación
// @Description Estado agregado: sin_documentos, rechazado, en_revision, incompleto o aprobado.
// @Tags documents
// @Produce json
// @Param applicantID path string true "ID del postulante"
// @Success 200 {object} documentsStatusResponse
// @Failure 403 {object} map[string]string "forbidden"
// @Router /applicants/{applicantID}/documents/status [get]
func documentsStatusHandler(svc *DocumentService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		applicantID := chi.URLParam(r, "applicantID")
		st, err := svc.Status(r.Context(), actor, applicantID)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, documentsStatusResponse{ApplicantID: applicantID, Status: string(st)})
	}
}
