package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con el estado actual")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInvalidTransition     = errors.New("transición de estado inválida")
	ErrAlreadyConverted      = errors.New("la cotización ya fue convertida en orden")
	ErrPaymentExceedsBalance = errors.New("el pago excede el saldo pendiente")
	ErrClientNotEligible     = errors.New("el cliente no puede recibir nuevas cotizaciones")
)

// ValidationError describe un campo de entrada rechazado. Unwrap devuelve ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// TransitionError se devuelve cuando una entidad no admite el cambio de estado pedido.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: no se puede pasar de %s a %s", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// StockError indica que un material no tiene unidades disponibles suficientes.
type StockError struct {
	MaterialCode string
	Requested    int
	Available    int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("material %s: solicitado %d, disponible %d", e.MaterialCode, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }
