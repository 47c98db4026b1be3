package lifecycle

import (
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

type openReviewRequest struct {
	Notes string `json:"notes"`
}

type decideAdoptionRequest struct {
	Decision     string `json:"decision"` // approved | rejected
	Notes        string `json:"notes"`
	ContractRef  string `json:"contract_ref"`
	FollowUpDate string `json:"follow_up_date"` // YYYY-MM-DD
}

// openReviewHandler godoc
// @Summary Enviar formulario final
// @Description Abre (o devuelve) la revisión final del pedido. Requiere que la última visita haya terminado con asistencia e interacción aprobada.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID del pedido"
// @Param payload body openReviewRequest false "Notas del postulante"
// @Success 200 {object} adoptionResponse
// @Failure 409 {object} map[string]string "pedido no habilitado"
// @Router /requests/{requestID}/adoption [post]
func openReviewHandler(svc *Finalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		var req openReviewRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		out, err := svc.Review(r.Context(), actor, chi.URLParam(r, "requestID"), req.Notes)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponse(out))
	}
}

func getAdoptionHandler(svc *Finalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		out, err := svc.Get(r.Context(), actor, chi.URLParam(r, "adoptionID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponse(out))
	}
}

// decideAdoptionHandler godoc
// @Summary Decidir adopción
// @Description Aprueba o rechaza la adopción. Solo administradores. El rechazo requiere notas; la aprobación genera el certificado.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, `admin`"
// @Param adoptionID path string true "ID de la adopción"
// @Param payload body decideAdoptionRequest true "Decisión"
// @Success 200 {object} adoptionResponse
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 409 {object} map[string]string "ya decidida"
// @Failure 422 {object} map[string]string "validation"
// @Failure 502 {object} map[string]string "certificado"
// @Router /adoptions/{adoptionID}/decision [post]
func decideAdoptionHandler(svc *Finalizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		var req decideAdoptionRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		in := DecideInput{
			AdoptionID:  chi.URLParam(r, "adoptionID"),
			Decision:    req.Decision,
			Notes:       req.Notes,
			ContractRef: req.ContractRef,
		}
		if s := strings.TrimSpace(req.FollowUpDate); s != "" {
			d, err := time.Parse(time.DateOnly, s)
			if err != nil {
				apperr.WriteHTTP(w, apperr.Validation("follow_up_date must be YYYY-MM-DD"))
				return
			}
			in.FollowUpDate = &d
		}

		out, err := svc.Decide(r.Context(), actor, in)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdoptionResponse(out))
	}
}
