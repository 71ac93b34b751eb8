package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del log de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: el log no se edita.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumnsSQL = `id, ts, code, description, user_name, type, quantity, note`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var note *string
	err := row.Scan(&m.ID, &m.Timestamp, &m.Code, &m.Description, &m.User, &m.Type, &m.Quantity, &note)
	if err != nil {
		return nil, err
	}
	if note != nil {
		m.Note = *note
	}
	return &m, nil
}

// Append persiste un movimiento confirmado.
func (r *MovementRepo) Append(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, ts, code, description, user_name, type, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var note *string
	if movement.Note != "" {
		note = &movement.Note
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Timestamp, movement.Code, movement.Description,
		movement.User, movement.Type, movement.Quantity, note,
	)
	if err != nil {
		return fmt.Errorf("%w: insertar movimiento: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// ListByCode lista los movimientos de un código en orden de registro.
func (r *MovementRepo) ListByCode(code string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumnsSQL + ` FROM movements WHERE code = $1 ORDER BY ts, id`
	rows, err := r.q.Query(context.Background(), query, code)
	if err != nil {
		return nil, fmt.Errorf("%w: listar movimientos: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// List devuelve una página del log completo en orden de registro.
func (r *MovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + movementColumnsSQL + ` FROM movements ORDER BY ts, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: listar movimientos: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var movements []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: leer movimiento: %v", domain.ErrStoreUnavailable, err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listar movimientos: %v", domain.ErrStoreUnavailable, err)
	}
	return movements, nil
}
