package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeENTRADA = "ENTRADA" // entrada, suma al balance
	MovementTypeSALIDA  = "SALIDA"  // salida, resta del balance
)

// IsValidMovementType verifica que el tipo (ya normalizado a mayúsculas)
// sea uno de los dos valores permitidos.
func IsValidMovementType(t string) bool {
	return t == MovementTypeENTRADA || t == MovementTypeSALIDA
}

// Movement representa un movimiento confirmado del log (append-only).
// Description es una copia desnormalizada de la descripción del catálogo al
// momento del commit, para auditoría aunque el catálogo cambie después.
type Movement struct {
	ID          string // uuid en la variante postgres; vacío en la variante tabular
	Timestamp   time.Time
	Code        string
	Description string
	User        string
	Type        string // ENTRADA | SALIDA
	Quantity    int    // siempre > 0; el signo lo da Type
	Note        string // opcional
}

// SignedQuantity devuelve la cantidad con signo según el tipo
// (positiva para ENTRADA, negativa para SALIDA).
func (m *Movement) SignedQuantity() int {
	if m.Type == MovementTypeSALIDA {
		return -m.Quantity
	}
	return m.Quantity
}
