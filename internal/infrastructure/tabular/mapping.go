package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Formatos con los que se escriben timestamp y fecha en el log de movimientos
// (hora del negocio, sin zona explícita).
const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// catalogColumns tabla de mapeo nombre-de-columna → índice (1-based) para la hoja
// de catálogo. Se construye una sola vez por repositorio a partir del encabezado,
// de modo que el resto del código nunca accede a campos por string.
type catalogColumns struct {
	code        int
	description int
	status      int
	location    int
	balance     int
	physCount   int // 0 = columna ausente
	physDate    int // 0 = columna ausente
	baseline    int // 0 = columna ausente; entonces el stock de alta se asume 0
	width       int
}

// movementColumns tabla de mapeo para la hoja de movimientos.
type movementColumns struct {
	timestamp   int
	code        int
	description int
	user        int
	kind        int
	quantity    int
	date        int
	note        int // 0 = columna ausente
	width       int
}

// headerIndex devuelve un índice 1-based por nombre de columna normalizado.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if _, ok := idx[name]; !ok {
			idx[name] = i + 1
		}
	}
	return idx
}

// resolveCatalogColumns construye el mapeo del catálogo desde el encabezado.
// Columnas requeridas: codigo, descripcion, estado, estante, balance_actual.
// Un encabezado sin esas columnas es dato malformado del almacén.
func resolveCatalogColumns(header []string) (catalogColumns, error) {
	idx := headerIndex(header)
	cols := catalogColumns{
		code:        idx["codigo"],
		description: idx["descripcion"],
		status:      idx["estado"],
		location:    idx["estante"],
		balance:     idx["balance_actual"],
		physCount:   idx["recuento_fisico"],
		physDate:    idx["fecha_recuento"],
		baseline:    idx["balance_inicial"],
		width:       len(header),
	}
	for _, req := range []struct {
		name string
		col  int
	}{
		{"codigo", cols.code},
		{"descripcion", cols.description},
		{"estado", cols.status},
		{"estante", cols.location},
		{"balance_actual", cols.balance},
	} {
		if req.col == 0 {
			return catalogColumns{}, fmt.Errorf("falta la columna %q en el encabezado del catálogo", req.name)
		}
	}
	return cols, nil
}

// resolveMovementColumns construye el mapeo del log de movimientos.
func resolveMovementColumns(header []string) (movementColumns, error) {
	idx := headerIndex(header)
	cols := movementColumns{
		timestamp:   idx["timestamp"],
		code:        idx["codigo"],
		description: idx["descripcion"],
		user:        idx["usuario"],
		kind:        idx["tipo"],
		quantity:    idx["cantidad"],
		date:        idx["fecha"],
		note:        idx["nota"],
		width:       len(header),
	}
	for _, req := range []struct {
		name string
		col  int
	}{
		{"timestamp", cols.timestamp},
		{"codigo", cols.code},
		{"descripcion", cols.description},
		{"usuario", cols.user},
		{"tipo", cols.kind},
		{"cantidad", cols.quantity},
		{"fecha", cols.date},
	} {
		if req.col == 0 {
			return movementColumns{}, fmt.Errorf("falta la columna %q en el encabezado de movimientos", req.name)
		}
	}
	return cols, nil
}

// cellAt devuelve la celda 1-based col de row, o "" si la fila es corta
// (las hojas omiten celdas vacías al final).
func cellAt(row []string, col int) string {
	if col <= 0 || col > len(row) {
		return ""
	}
	return strings.TrimSpace(row[col-1])
}

// intCell convierte una celda a entero; celda vacía vale 0.
func intCell(row []string, col int, field string) (int, error) {
	raw := cellAt(row, col)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("la columna %s no es un número válido: %q", field, raw)
	}
	return n, nil
}

// itemFromRow construye el registro tipado de catálogo desde una fila.
func itemFromRow(cols catalogColumns, row []string) (*entity.CatalogItem, error) {
	balance, err := intCell(row, cols.balance, "balance_actual")
	if err != nil {
		return nil, err
	}
	baseline, err := intCell(row, cols.baseline, "balance_inicial")
	if err != nil {
		return nil, err
	}
	item := &entity.CatalogItem{
		Code:              cellAt(row, cols.code),
		Description:       cellAt(row, cols.description),
		Status:            cellAt(row, cols.status),
		Location:          cellAt(row, cols.location),
		BaselineStock:     baseline,
		CachedBalance:     balance,
		PhysicalCountDate: cellAt(row, cols.physDate),
	}
	if raw := cellAt(row, cols.physCount); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("la columna recuento_fisico no es un número válido: %q", raw)
		}
		item.PhysicalCount = &n
	}
	return item, nil
}

// itemToRow serializa un CatalogItem en el orden de columnas de la hoja.
func itemToRow(cols catalogColumns, item *entity.CatalogItem) []string {
	row := make([]string, cols.width)
	set := func(col int, value string) {
		if col > 0 && col <= len(row) {
			row[col-1] = value
		}
	}
	set(cols.code, item.Code)
	set(cols.description, item.Description)
	set(cols.status, item.Status)
	set(cols.location, item.Location)
	set(cols.balance, strconv.Itoa(item.CachedBalance))
	set(cols.baseline, strconv.Itoa(item.BaselineStock))
	if item.PhysicalCount != nil {
		set(cols.physCount, strconv.Itoa(*item.PhysicalCount))
	}
	set(cols.physDate, item.PhysicalCountDate)
	return row
}

// movementFromRow construye el registro tipado de movimiento desde una fila del log.
func movementFromRow(cols movementColumns, row []string) (*entity.Movement, error) {
	qty, err := intCell(row, cols.quantity, "cantidad")
	if err != nil {
		return nil, err
	}
	m := &entity.Movement{
		Code:        cellAt(row, cols.code),
		Description: cellAt(row, cols.description),
		User:        cellAt(row, cols.user),
		Type:        strings.ToUpper(cellAt(row, cols.kind)),
		Quantity:    qty,
		Note:        cellAt(row, cols.note),
	}
	if raw := cellAt(row, cols.timestamp); raw != "" {
		ts, err := time.Parse(timestampLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("timestamp malformado en el log: %q", raw)
		}
		m.Timestamp = ts
	}
	return m, nil
}

// movementToRow serializa un movimiento en el orden de columnas del log.
// La fecha se deriva del timestamp (solo día, hora del negocio).
func movementToRow(cols movementColumns, m *entity.Movement) []string {
	row := make([]string, cols.width)
	set := func(col int, value string) {
		if col > 0 && col <= len(row) {
			row[col-1] = value
		}
	}
	set(cols.timestamp, m.Timestamp.Format(timestampLayout))
	set(cols.code, m.Code)
	set(cols.description, m.Description)
	set(cols.user, m.User)
	set(cols.kind, m.Type)
	set(cols.quantity, strconv.Itoa(m.Quantity))
	set(cols.date, m.Timestamp.Format(dateLayout))
	set(cols.note, m.Note)
	return row
}
