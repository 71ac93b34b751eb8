package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación de CatalogRepository sobre PostgreSQL (usable con
// pool o tx). A diferencia de la variante tabular, aquí codigo es llave primaria:
// los duplicados son imposibles por constraint.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const catalogColumnsSQL = `code, description, status, location, baseline_stock, cached_balance, physical_count, physical_count_date`

func scanItem(row pgx.Row) (*entity.CatalogItem, error) {
	var item entity.CatalogItem
	var physDate *string
	err := row.Scan(
		&item.Code, &item.Description, &item.Status, &item.Location,
		&item.BaselineStock, &item.CachedBalance, &item.PhysicalCount, &physDate,
	)
	if err != nil {
		return nil, err
	}
	if physDate != nil {
		item.PhysicalCountDate = *physDate
	}
	return &item, nil
}

// FindByCode devuelve la fila con ese código (cero o una, por la llave primaria).
func (r *CatalogRepo) FindByCode(code string) ([]*entity.CatalogItem, error) {
	query := `SELECT ` + catalogColumnsSQL + ` FROM catalog_items WHERE code = $1`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: buscar herramienta: %v", domain.ErrStoreUnavailable, err)
	}
	return []*entity.CatalogItem{item}, nil
}

// FindByCodeForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE) hasta el
// fin de la transacción, evitando lost-updates entre commits concurrentes.
func (r *CatalogRepo) FindByCodeForUpdate(code string) (*entity.CatalogItem, error) {
	query := `SELECT ` + catalogColumnsSQL + ` FROM catalog_items WHERE code = $1 FOR UPDATE`
	item, err := scanItem(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: bloquear herramienta: %v", domain.ErrStoreUnavailable, err)
	}
	return item, nil
}

// List devuelve el catálogo completo ordenado por código.
func (r *CatalogRepo) List() ([]*entity.CatalogItem, error) {
	query := `SELECT ` + catalogColumnsSQL + ` FROM catalog_items ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("%w: listar catálogo: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var items []*entity.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: leer fila del catálogo: %v", domain.ErrStoreUnavailable, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listar catálogo: %v", domain.ErrStoreUnavailable, err)
	}
	return items, nil
}

// Create persiste una herramienta nueva.
func (r *CatalogRepo) Create(item *entity.CatalogItem) error {
	query := `
		INSERT INTO catalog_items (code, description, status, location, baseline_stock, cached_balance, physical_count, physical_count_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var physDate *string
	if item.PhysicalCountDate != "" {
		physDate = &item.PhysicalCountDate
	}
	_, err := r.q.Exec(context.Background(), query,
		item.Code, item.Description, item.Status, item.Location,
		item.BaselineStock, item.CachedBalance, item.PhysicalCount, physDate, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe el código %s", domain.ErrDuplicate, item.Code)
		}
		return fmt.Errorf("%w: insertar herramienta: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// UpdateCachedBalance reescribe el balance materializado de la herramienta.
func (r *CatalogRepo) UpdateCachedBalance(code string, balance int) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE catalog_items SET cached_balance = $2 WHERE code = $1`, code, balance)
	if err != nil {
		return fmt.Errorf("%w: actualizar balance: %v", domain.ErrStoreUnavailable, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	return nil
}
