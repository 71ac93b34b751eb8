package tabular

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación de CatalogRepository sobre un Store tabular.
// El mapeo de columnas se resuelve una sola vez desde el encabezado y se cachea;
// si la hoja cambia de columnas hay que reiniciar el proceso.
type CatalogRepo struct {
	store Store
	table string

	mu   sync.Mutex
	cols *catalogColumns
}

// NewCatalogRepository construye el adaptador sobre la tabla (hoja) indicada.
func NewCatalogRepository(store Store, table string) *CatalogRepo {
	return &CatalogRepo{store: store, table: table}
}

// columns resuelve y cachea el mapeo de columnas leyendo el encabezado.
func (r *CatalogRepo) columns() (catalogColumns, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cols != nil {
		return *r.cols, nil
	}
	rows, err := r.store.ReadAll(r.table)
	if err != nil {
		return catalogColumns{}, fmt.Errorf("%w: leer catálogo: %v", domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return catalogColumns{}, fmt.Errorf("%w: el catálogo no tiene encabezado", domain.ErrStoreUnavailable)
	}
	cols, err := resolveCatalogColumns(rows[0])
	if err != nil {
		return catalogColumns{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	r.cols = &cols
	return cols, nil
}

// FindByCode devuelve todas las filas del catálogo con ese código, en orden de
// la hoja. Coincidencia exacta y case-sensitive sobre la columna codigo.
func (r *CatalogRepo) FindByCode(code string) ([]*entity.CatalogItem, error) {
	cols, err := r.columns()
	if err != nil {
		return nil, err
	}
	rows, err := r.store.ReadAll(r.table)
	if err != nil {
		return nil, fmt.Errorf("%w: leer catálogo: %v", domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: el catálogo no tiene encabezado", domain.ErrStoreUnavailable)
	}
	var items []*entity.CatalogItem
	for _, row := range rows[1:] {
		if cellAt(row, cols.code) != code {
			continue
		}
		item, err := itemFromRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// FindByCodeForUpdate lee la primera fila que coincide, celda por celda, igual
// que la consulta rápida de la fuente original. Sin bloqueo: la serialización
// por código la aporta el motor de movimientos.
func (r *CatalogRepo) FindByCodeForUpdate(code string) (*entity.CatalogItem, error) {
	cols, err := r.columns()
	if err != nil {
		return nil, err
	}
	positions, err := r.store.FindRows(r.table, cols.code, code)
	if err != nil {
		return nil, fmt.Errorf("%w: buscar código: %v", domain.ErrStoreUnavailable, err)
	}
	if len(positions) == 0 {
		return nil, nil
	}
	row := make([]string, cols.width)
	for col := 1; col <= cols.width; col++ {
		value, err := r.store.GetCell(r.table, positions[0], col)
		if err != nil {
			return nil, fmt.Errorf("%w: leer fila del catálogo: %v", domain.ErrStoreUnavailable, err)
		}
		row[col-1] = value
	}
	item, err := itemFromRow(cols, row)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return item, nil
}

// List devuelve el catálogo completo en orden de la hoja.
func (r *CatalogRepo) List() ([]*entity.CatalogItem, error) {
	cols, err := r.columns()
	if err != nil {
		return nil, err
	}
	rows, err := r.store.ReadAll(r.table)
	if err != nil {
		return nil, fmt.Errorf("%w: leer catálogo: %v", domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: el catálogo no tiene encabezado", domain.ErrStoreUnavailable)
	}
	items := make([]*entity.CatalogItem, 0, len(rows)-1)
	for _, row := range rows[1:] {
		item, err := itemFromRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Create agrega una fila nueva al final del catálogo.
func (r *CatalogRepo) Create(item *entity.CatalogItem) error {
	cols, err := r.columns()
	if err != nil {
		return err
	}
	if err := r.store.AppendRow(r.table, itemToRow(cols, item)); err != nil {
		return fmt.Errorf("%w: agregar fila al catálogo: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// UpdateCachedBalance reescribe la celda balance_actual de la primera fila con
// ese código (primera coincidencia, como la fuente original).
func (r *CatalogRepo) UpdateCachedBalance(code string, balance int) error {
	cols, err := r.columns()
	if err != nil {
		return err
	}
	positions, err := r.store.FindRows(r.table, cols.code, code)
	if err != nil {
		return fmt.Errorf("%w: buscar código: %v", domain.ErrStoreUnavailable, err)
	}
	if len(positions) == 0 {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, code)
	}
	if err := r.store.SetCell(r.table, positions[0], cols.balance, strconv.Itoa(balance)); err != nil {
		return fmt.Errorf("%w: actualizar balance: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
