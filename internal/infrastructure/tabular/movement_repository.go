package tabular

import (
	"fmt"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre un Store tabular.
// El log es append-only: solo AppendRow, nunca SetCell.
type MovementRepo struct {
	store Store
	table string

	mu   sync.Mutex
	cols *movementColumns
}

// NewMovementRepository construye el adaptador sobre la tabla (hoja) del log.
func NewMovementRepository(store Store, table string) *MovementRepo {
	return &MovementRepo{store: store, table: table}
}

func (r *MovementRepo) columns() (movementColumns, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cols != nil {
		return *r.cols, nil
	}
	rows, err := r.store.ReadAll(r.table)
	if err != nil {
		return movementColumns{}, fmt.Errorf("%w: leer movimientos: %v", domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return movementColumns{}, fmt.Errorf("%w: el log de movimientos no tiene encabezado", domain.ErrStoreUnavailable)
	}
	cols, err := resolveMovementColumns(rows[0])
	if err != nil {
		return movementColumns{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	r.cols = &cols
	return cols, nil
}

// Append agrega el movimiento al final del log.
func (r *MovementRepo) Append(movement *entity.Movement) error {
	cols, err := r.columns()
	if err != nil {
		return err
	}
	if err := r.store.AppendRow(r.table, movementToRow(cols, movement)); err != nil {
		return fmt.Errorf("%w: agregar movimiento: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// ListByCode devuelve los movimientos de un código en orden de registro.
func (r *MovementRepo) ListByCode(code string) ([]*entity.Movement, error) {
	cols, err := r.columns()
	if err != nil {
		return nil, err
	}
	rows, err := r.store.ReadAll(r.table)
	if err != nil {
		return nil, fmt.Errorf("%w: leer movimientos: %v", domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: el log de movimientos no tiene encabezado", domain.ErrStoreUnavailable)
	}
	var movements []*entity.Movement
	for _, row := range rows[1:] {
		if cellAt(row, cols.code) != code {
			continue
		}
		m, err := movementFromRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		movements = append(movements, m)
	}
	return movements, nil
}

// List devuelve una página del log completo en orden de registro.
func (r *MovementRepo) List(limit, offset int) ([]*entity.Movement, error) {
	cols, err := r.columns()
	if err != nil {
		return nil, err
	}
	rows, err := r.store.ReadAll(r.table)
	if err != nil {
		return nil, fmt.Errorf("%w: leer movimientos: %v", domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: el log de movimientos no tiene encabezado", domain.ErrStoreUnavailable)
	}
	data := rows[1:]
	if offset < 0 {
		offset = 0
	}
	if offset >= len(data) {
		return nil, nil
	}
	data = data[offset:]
	if limit > 0 && limit < len(data) {
		data = data[:limit]
	}
	movements := make([]*entity.Movement, 0, len(data))
	for _, row := range data {
		m, err := movementFromRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		movements = append(movements, m)
	}
	return movements, nil
}
