package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrMissingField      = errors.New("campo obligatorio ausente")
	ErrDuplicate         = errors.New("identificador duplicado")
	ErrUnknownProduct    = errors.New("el producto no existe")
	ErrUnknownLocation   = errors.New("la ubicación no existe")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser un entero positivo")
	ErrNoStock           = errors.New("sin stock en la ubicación de origen")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConflict          = errors.New("conflicto con el estado actual")
)

// StockError rechazo por falta de saldo en la ubicación de origen. Available
// lleva el saldo calculado al momento de la validación, para diagnóstico.
type StockError struct {
	ProductID  string
	LocationID string
	Requested  int64
	Available  int64
}

func (e *StockError) Error() string {
	if e.Available <= 0 {
		return fmt.Sprintf("sin stock del producto %s en la ubicación %s", e.ProductID, e.LocationID)
	}
	return fmt.Sprintf("stock insuficiente en %s: disponible %d, solicitado %d", e.LocationID, e.Available, e.Requested)
}

// Is hace que errors.Is resuelva a ErrNoStock con saldo cero o negativo y a
// ErrInsufficientStock con saldo positivo menor a lo solicitado.
func (e *StockError) Is(target error) bool {
	if e.Available <= 0 {
		return target == ErrNoStock
	}
	return target == ErrInsufficientStock
}
