package lifecycle

import (
	"net/http"

	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// applicantPhaseHandler godoc
// @Summary Etapa del postulante
// @Description Etapa actual, paso (1..6) y próxima acción, calculadas en cada llamada. Dueño o administrador.
// @Tags phase
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param applicantID path string true "ID del postulante"
// @Success 200 {object} phaseResponse
// @Failure 403 {object} map[string]string "forbidden"
// @Router /applicants/{applicantID}/phase [get]
func applicantPhaseHandler(svc *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		writePhase(w, r, svc, actor, chi.URLParam(r, "applicantID"))
	}
}

func myPhaseHandler(svc *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		writePhase(w, r, svc, actor, actor.ID)
	}
}

func writePhase(w http.ResponseWriter, r *http.Request, svc *Orchestrator, actor auth.Actor, applicantID string) {
	p, err := svc.ForActor(r.Context(), actor, applicantID)
	if err != nil {
		apperr.WriteHTTP(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPhaseResponse(p))
}
