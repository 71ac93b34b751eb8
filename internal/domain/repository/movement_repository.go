package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el log de movimientos.
// El log es append-only: no hay update ni delete.
type MovementRepository interface {
	Append(movement *entity.Movement) error
	ListByCode(code string) ([]*entity.Movement, error)
	List(limit, offset int) ([]*entity.Movement, error)
}
