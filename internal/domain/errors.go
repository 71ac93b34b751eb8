package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("código no encontrado en el inventario")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrAmbiguousCode     = errors.New("código duplicado en el inventario")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStoreUnavailable  = errors.New("almacén de datos no disponible")
)

// InsufficientStockError lleva el balance actual y la cantidad solicitada para
// que el caller pueda mostrar un mensaje accionable. errors.Is(err, ErrInsufficientStock)
// sigue funcionando.
type InsufficientStockError struct {
	Code      string
	Balance   int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: balance actual %d, intentas sacar %d",
		e.Code, e.Balance, e.Requested)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
