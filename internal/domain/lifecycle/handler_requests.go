package lifecycle

import (
	"net/http"
	"strings"

	"pet-adoption/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

type createRequestRequest struct {
	AnimalID string `json:"animal_id"`
	// ApplicantID sólo lo usan administradores para cargar un pedido en nombre de otro.
	ApplicantID string `json:"applicant_id,omitempty"`
}

// createRequestHandler godoc
// @Summary Crear pedido de adopción
// @Description Abre un pedido para el animal indicado y lo reserva. Requiere documentación `aprobado`, ningún pedido activo y ninguna visita agendada. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createRequestRequest true "Animal a adoptar"
// @Success 201 {object} requestResponse
// @Failure 400 {object} map[string]string "invalid json"
// @Failure 401 {object} map[string]string "unauthorized"
// @Failure 404 {object} map[string]string "animal not found"
// @Failure 409 {object} map[string]string "pedido activo / animal no disponible"
// @Failure 422 {object} map[string]string "documentación no aprobada"
// @Router /requests [post]
func createRequestHandler(svc *RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}

		var req createRequestRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		applicantID := strings.TrimSpace(req.ApplicantID)
		if applicantID == "" {
			applicantID = actor.ID
		}

		out, err := svc.Create(r.Context(), actor, applicantID, req.AnimalID)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRequestResponse(out))
	}
}

func getRequestHandler(svc *RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		out, err := svc.Get(r.Context(), actor, chi.URLParam(r, "requestID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(out))
	}
}

// cancelRequestHandler godoc
// @Summary Cancelar pedido
// @Description Cancela el pedido, su visita agendada y libera el animal. Idempotente. Dueño del pedido o administrador.
// @Tags requests
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID del pedido"
// @Success 200 {object} requestResponse
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 404 {object} map[string]string "adoption request not found"
// @Failure 409 {object} map[string]string "pedido cerrado"
// @Router /requests/{requestID}/cancel [post]
func cancelRequestHandler(svc *RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		out, err := svc.Cancel(r.Context(), actor, chi.URLParam(r, "requestID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(out))
	}
}

func reopenRequestHandler(svc *RequestService) http.HandlerFunc {
	// Admin: habilita reagendar después de una visita negativa
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		out, err := svc.Reopen(r.Context(), actor, chi.URLParam(r, "requestID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toRequestResponse(out))
	}
}

func listRequestsHandler(svc *RequestService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		items, err := svc.ListByApplicant(r.Context(), actor, chi.URLParam(r, "applicantID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		out := make([]requestResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toRequestResponse(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}
