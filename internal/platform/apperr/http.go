package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPStatus traduce el Kind a status HTTP. Errores sin Kind => 500.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindConflict, KindSlotConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthorization:
		return http.StatusForbidden
	case KindDependency:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteHTTP escribe {"error": kind, "message": texto}.
// Los detalles de dependencias no se exponen al cliente.
func WriteHTTP(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)

	body := errorBody{Error: string(KindOf(err)), Message: err.Error()}
	var e *Error
	if errors.As(err, &e) && e.Kind == KindDependency && e.Message != "" {
		body.Message = e.Message
	}
	if body.Error == "" {
		body = errorBody{Error: "internal", Message: "internal error"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteStatus escribe un error sin Kind de dominio (400 por json inválido, 401, etc).
func WriteStatus(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code, Message: msg})
}
