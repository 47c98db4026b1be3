// Package apperr define la taxonomía de errores compartida por dominio, adapters y handlers.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation    Kind = "validation"
	KindConflict      Kind = "conflict"
	KindSlotConflict  Kind = "slot_conflict"
	KindNotFound      Kind = "not_found"
	KindAuthorization Kind = "authorization"
	KindDependency    Kind = "dependency"
)

// Error lleva el tipo del fallo más un mensaje apto para el usuario final.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Sentinels para comparar con errors.Is(err, apperr.ErrConflict).
var (
	ErrValidation    = &Error{Kind: KindValidation}
	ErrConflict      = &Error{Kind: KindConflict}
	ErrSlotConflict  = &Error{Kind: KindSlotConflict}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrAuthorization = &Error{Kind: KindAuthorization}
	ErrDependency    = &Error{Kind: KindDependency}
)

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is compara por Kind contra los sentinels. Un slot_conflict también es un conflict.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Message != "" || t.Err != nil {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return t.Kind == KindConflict && e.Kind == KindSlotConflict
}

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

func SlotConflict(msg string) error { return &Error{Kind: KindSlotConflict, Message: msg} }

// NotFound recibe el nombre de la entidad: NotFound("animal") => "animal not found".
func NotFound(entity string) error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func Authorization(msg string) error { return &Error{Kind: KindAuthorization, Message: msg} }

// Dependency envuelve fallos de persistencia u otros colaboradores externos.
func Dependency(msg string, err error) error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// KindOf devuelve el Kind del primer *Error en la cadena, o "" si no hay ninguno.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsValidation(err error) bool    { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool      { return errors.Is(err, ErrConflict) }
func IsSlotConflict(err error) bool  { return errors.Is(err, ErrSlotConflict) }
func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsAuthorization(err error) bool { return errors.Is(err, ErrAuthorization) }
func IsDependency(err error) bool    { return errors.Is(err, ErrDependency) }
