package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInvalidOperation    = errors.New("operación inválida")
	ErrInvalidReference    = errors.New("producto o depósito no existe")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente la operación")
)

// InsufficientStockError indica que el stock disponible no cubre lo solicitado.
// Distingue "sin stock" (Available == 0) de "stock parcial" para el mensaje al caller.
// errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	if e.Available == 0 {
		return fmt.Sprintf("no hay stock disponible (solicitado %d)", e.Requested)
	}
	return fmt.Sprintf("stock insuficiente (disp=%d, req=%d)", e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
