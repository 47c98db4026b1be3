package lifecycle

import (
	"net/http"

	"pet-adoption/internal/platform/apperr"

	"github.com/go-chi/chi/v5"
)

type slotRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

type evaluateRequest struct {
	Attendance  string `json:"attendance"`  // attended | no_show
	Interaction string `json:"interaction"` // approved | unfit (vacío si no asistió)
	Note        string `json:"note"`
}

type slotsResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// confirmAppointmentHandler godoc
// @Summary Confirmar visita
// @Description Agenda la visita del pedido en un slot libre (día hábil, horario de atención, dentro de 30 días). El pedido pasa a `in_progress`. Solo el postulante.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param requestID path string true "ID del pedido"
// @Param payload body slotRequest true "Slot elegido"
// @Success 201 {object} appointmentResponse
// @Failure 409 {object} map[string]string "slot_conflict / pedido no pendiente"
// @Failure 422 {object} map[string]string "slot inválido"
// @Router /requests/{requestID}/appointments [post]
func confirmAppointmentHandler(svc *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		var req slotRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		out, err := svc.Confirm(r.Context(), actor, ConfirmInput{
			RequestID:   chi.URLParam(r, "requestID"),
			ApplicantID: actor.ID,
			Date:        req.Date,
			Time:        req.Time,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(out))
	}
}

// availableSlotsHandler godoc
// @Summary Horarios libres
// @Description Devuelve los horarios libres de un día. Se recalcula en cada llamada.
// @Tags appointments
// @Produce json
// @Param date query string true "Día en formato YYYY-MM-DD"
// @Success 200 {object} slotsResponse
// @Failure 422 {object} map[string]string "día inválido"
// @Router /appointments/slots [get]
func availableSlotsHandler(svc *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireAuth(w, r); !ok {
			return
		}
		date := r.URL.Query().Get("date")
		times, err := svc.AvailableSlots(r.Context(), date)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, slotsResponse{Date: date, Times: times})
	}
}

func getAppointmentHandler(svc *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		out, err := svc.Get(r.Context(), actor, chi.URLParam(r, "appointmentID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(out))
	}
}

// cancelAppointmentHandler godoc
// @Summary Cancelar visita
// @Description Cancela la visita, libera el slot y devuelve el pedido a `pending`. Cancelar dos veces no es error.
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param appointmentID path string true "ID de la visita"
// @Success 200 {object} appointmentResponse
// @Failure 404 {object} map[string]string "appointment not found"
// @Router /appointments/{appointmentID}/cancel [post]
func cancelAppointmentHandler(svc *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		out, err := svc.Cancel(r.Context(), actor, chi.URLParam(r, "appointmentID"))
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(out))
	}
}

func rescheduleAppointmentHandler(svc *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		var req slotRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		out, err := svc.Reschedule(r.Context(), actor, chi.URLParam(r, "appointmentID"), req.Date, req.Time)
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(out))
	}
}

// evaluateAppointmentHandler godoc
// @Summary Evaluar visita
// @Description Registra asistencia e interacción. Solo administradores. `attended` requiere interacción; `no_show` la ignora.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param X-Debug-Role header string false "Solo en modo dev, `admin`"
// @Param appointmentID path string true "ID de la visita"
// @Param payload body evaluateRequest true "Resultado de la visita"
// @Success 200 {object} appointmentResponse
// @Failure 403 {object} map[string]string "forbidden"
// @Failure 409 {object} map[string]string "visita no agendada"
// @Failure 422 {object} map[string]string "validation"
// @Router /appointments/{appointmentID}/evaluate [post]
func evaluateAppointmentHandler(svc *Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireAuth(w, r)
		if !ok {
			return
		}
		var req evaluateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		out, err := svc.Evaluate(r.Context(), actor, EvaluateInput{
			AppointmentID: chi.URLParam(r, "appointmentID"),
			Attendance:    req.Attendance,
			Interaction:   req.Interaction,
			Note:          req.Note,
		})
		if err != nil {
			apperr.WriteHTTP(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(out))
	}
}
