package tabular

// Store abstrae un almacén tabular genérico al estilo hoja de cálculo: filas
// ordenadas por tabla, la primera fila es el encabezado, y filas/columnas son
// 1-based (convención de hojas). Las implementaciones son Google Sheets
// (internal/infrastructure/sheets) y un almacén en memoria para tests.
type Store interface {
	// ReadAll devuelve todas las filas de la tabla, encabezado incluido.
	ReadAll(table string) ([][]string, error)
	// FindRows devuelve las posiciones (1-based) de las filas cuyo valor en la
	// columna dada coincide exactamente, en orden de iteración.
	FindRows(table string, column int, value string) ([]int, error)
	GetCell(table string, row, column int) (string, error)
	SetCell(table string, row, column int, value string) error
	// AppendRow agrega una fila al final de la tabla.
	AppendRow(table string, values []string) error
}
