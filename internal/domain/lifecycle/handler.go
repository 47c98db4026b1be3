package lifecycle

import (
	"encoding/json"
	"net/http"

	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/apperr"
	"pet-adoption/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta las rutas del proceso de adopción.
func RegisterRoutes(r chi.Router, svc Services) {
	r.Route("/requests", func(rr chi.Router) {
		rr.Post("/", createRequestHandler(svc.Requests))
		rr.Get("/{requestID}", getRequestHandler(svc.Requests))
		rr.Post("/{requestID}/cancel", cancelRequestHandler(svc.Requests))
		rr.Post("/{requestID}/reopen", reopenRequestHandler(svc.Requests))

		rr.Post("/{requestID}/appointments", confirmAppointmentHandler(svc.Scheduler))
		rr.Post("/{requestID}/adoption", openReviewHandler(svc.Finalizer))
	})

	r.Route("/appointments", func(ar chi.Router) {
		ar.Get("/slots", availableSlotsHandler(svc.Scheduler))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc.Scheduler))
		ar.Post("/{appointmentID}/cancel", cancelAppointmentHandler(svc.Scheduler))
		ar.Post("/{appointmentID}/reschedule", rescheduleAppointmentHandler(svc.Scheduler))
		ar.Post("/{appointmentID}/evaluate", evaluateAppointmentHandler(svc.Scheduler))
	})

	r.Route("/documents", func(dr chi.Router) {
		dr.Post("/", uploadDocumentHandler(svc.Documents))
		dr.Get("/{documentID}/download", documentDownloadHandler(svc.Documents))
		dr.Post("/{documentID}/review", reviewDocumentHandler(svc.Documents))
	})

	r.Route("/adoptions", func(ar chi.Router) {
		ar.Get("/{adoptionID}", getAdoptionHandler(svc.Finalizer))
		ar.Post("/{adoptionID}/decision", decideAdoptionHandler(svc.Finalizer))
	})

	r.Route("/applicants/{applicantID}", func(ar chi.Router) {
		ar.Get("/documents", listDocumentsHandler(svc.Documents))
		ar.Get("/documents/status", documentsStatusHandler(svc.Documents))
		ar.Get("/requests", listRequestsHandler(svc.Requests))
		ar.Get("/phase", applicantPhaseHandler(svc.Phase))
	})

	r.Get("/me/phase", myPhaseHandler(svc.Phase))
}

// requireAuth corta con 401 si no hay usuario autenticado.
func requireAuth(w http.ResponseWriter, r *http.Request) (auth.Actor, bool) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		apperr.WriteStatus(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
		return auth.Actor{}, false
	}
	return actor, true
}

// decodeJSON: body vacío se acepta como objeto vacío; json inválido => 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apperr.WriteStatus(w, http.StatusBadRequest, "invalid_json", "invalid json")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
