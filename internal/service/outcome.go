package service

import (
	"errors"
	"fmt"
)

// ErrOracleUnavailable marca cualquier fallo del oraculo: timeout, status no exitoso o contenido invalido.
var ErrOracleUnavailable = errors.New("oracle unavailable")

// Outcome is the tagged result of an oracle call: Success carries a value,
// Unavailable carries the reason. Consumers must handle both arms via Get.
type Outcome[T any] struct {
	value  T
	ok     bool
	reason error
}

// Success wraps a usable oracle value.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, ok: true}
}

// Unavailable records why the oracle could not be used.
func Unavailable[T any](reason error) Outcome[T] {
	switch {
	case reason == nil:
		reason = ErrOracleUnavailable
	case !errors.Is(reason, ErrOracleUnavailable):
		reason = fmt.Errorf("%w: %v", ErrOracleUnavailable, reason)
	}
	return Outcome[T]{reason: reason}
}

// Get returns the value and true on Success, the zero value and false on Unavailable.
func (o Outcome[T]) Get() (T, bool) {
	return o.value, o.ok
}

// Reason returns nil on Success. On Unavailable the error wraps ErrOracleUnavailable.
func (o Outcome[T]) Reason() error {
	if o.ok {
		return nil
	}
	if o.reason == nil {
		return ErrOracleUnavailable
	}
	return o.reason
}
